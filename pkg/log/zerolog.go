package log

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ZerologProvider is a LoggerProvider backed by zerolog.
type ZerologProvider struct {
	base  zerolog.Logger
	level atomic.Int32
}

// NewZerologProvider writes JSON lines to stderr.
func NewZerologProvider(level Level) *ZerologProvider {
	return NewZerologProviderWithWriter(os.Stderr, level)
}

// NewConsoleProvider writes human-readable lines to w.
func NewConsoleProvider(w io.Writer, level Level) *ZerologProvider {
	return NewZerologProviderWithWriter(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}, level)
}

// NewZerologProviderWithWriter writes JSON lines to w.
func NewZerologProviderWithWriter(w io.Writer, level Level) *ZerologProvider {
	p := &ZerologProvider{
		base: zerolog.New(w).With().Timestamp().Logger(),
	}
	p.SetLevel(level)
	return p
}

// SetLevel changes the minimum level for every logger handed out by p,
// including ones obtained earlier.
func (p *ZerologProvider) SetLevel(level Level) {
	p.level.Store(int32(level))
}

// GetLogger returns an unnamed logger.
func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{provider: p, logger: p.base}
}

// GetLoggerWithName returns a logger carrying a "logger" field.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{provider: p, logger: p.base.With().Str("logger", name).Logger()}
}

func (p *ZerologProvider) zerologLevel() zerolog.Level {
	switch Level(p.level.Load()) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelDisabled:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type zerologLogger struct {
	provider *ZerologProvider
	logger   zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...interface{}) {
	l.event(zerolog.DebugLevel, msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...interface{}) {
	l.event(zerolog.InfoLevel, msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...interface{}) {
	l.event(zerolog.WarnLevel, msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...interface{}) {
	l.event(zerolog.ErrorLevel, msg, fields)
}

func (l *zerologLogger) With(fields ...interface{}) Logger {
	return &zerologLogger{
		provider: l.provider,
		logger:   l.logger.With().Fields(normalize(fields)).Logger(),
	}
}

func (l *zerologLogger) event(level zerolog.Level, msg string, fields []interface{}) {
	threshold := l.provider.zerologLevel()
	if threshold == zerolog.Disabled || level < threshold {
		return
	}
	l.logger.WithLevel(level).Fields(normalize(fields)).Msg(msg)
}

// normalize pads an odd field list and stringifies non-string keys so
// zerolog never drops a pair.
func normalize(fields []interface{}) []interface{} {
	out := make([]interface{}, len(fields), len(fields)+1)
	copy(out, fields)
	if len(out)%2 == 1 {
		out = append(out, "(MISSING)")
	}
	for i := 0; i < len(out); i += 2 {
		if _, ok := out[i].(string); !ok {
			out[i] = fmt.Sprint(out[i])
		}
	}
	return out
}
