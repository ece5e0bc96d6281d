// Package log provides structured logging for regfixture.
//
// Components obtain a named Logger from the global provider and attach
// key/value context with With:
//
//	logger := log.GetLoggerWithName("fixture").With(log.ComponentKey, "fixture")
//	logger.Info("Fixture generated", log.SamplesKey, n, log.FeaturesKey, m)
//
// Logs are written to stderr so that stdout carries only fixture text. The
// default provider is backed by github.com/rs/zerolog at info level.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
)

// Standard field keys.
const (
	ComponentKey  = "component"
	ModelNameKey  = "model_name"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	DurationMsKey = "duration_ms"
	PredsKey      = "preds"
	SeedKey       = "seed"
	PathKey       = "path"
	ErrorKey      = "error"
)

// Operation values.
const (
	OperationGenerate = "generate"
	OperationWrite    = "write"
	OperationParse    = "parse"
	OperationVerify   = "verify"
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationPlot     = "plot"
)

// Phase values.
const (
	PhaseSampling   = "sampling"
	PhaseOutput     = "output"
	PhaseTraining   = "training"
	PhaseInference  = "inference"
	PhaseValidation = "validation"
)

// Logger is the structured logger used across the module. Fields are
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// Level is a logging severity.
type Level int8

// Levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelDisabled
)

// ToLogLevel parses a level name. Unknown names map to LevelInfo.
func ToLogLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "off", "disabled", "none":
		return LevelDisabled
	default:
		return LevelInfo
	}
}

// LoggerProvider hands out loggers sharing one sink and level.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}

var (
	mu             sync.RWMutex
	globalProvider LoggerProvider = NewZerologProvider(LevelInfo)
)

// SetProvider replaces the global provider.
func SetProvider(p LoggerProvider) {
	mu.Lock()
	defer mu.Unlock()
	globalProvider = p
}

func provider() LoggerProvider {
	mu.RLock()
	defer mu.RUnlock()
	return globalProvider
}

// SetupLogger installs a human-readable stderr provider at the named level.
func SetupLogger(level string) {
	SetProvider(NewConsoleProvider(os.Stderr, ToLogLevel(level)))
}

// SetOutput installs a JSON provider writing to w at the given level.
func SetOutput(w io.Writer, level Level) {
	SetProvider(NewZerologProviderWithWriter(w, level))
}

// GetLogger returns the global logger.
func GetLogger() Logger {
	return provider().GetLogger()
}

// GetLoggerWithName returns a logger tagged with name.
func GetLoggerWithName(name string) Logger {
	return provider().GetLoggerWithName(name)
}

// LogError logs err at error level with msg and optional fields.
func LogError(err error, msg string, fields ...interface{}) {
	GetLogger().Error(msg, append([]interface{}{ErrorKey, err}, fields...)...)
}
