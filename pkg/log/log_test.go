package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"off", LevelDisabled},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToLogLevel(tt.in))
		})
	}
}

func TestZerologProvider_Fields(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProviderWithWriter(&buf, LevelDebug)

	logger := p.GetLoggerWithName("fixture").With(ComponentKey, "fixture")
	logger.Info("Fixture generated", SamplesKey, 1000, FeaturesKey, 6)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "Fixture generated", lines[0]["message"])
	assert.Equal(t, "fixture", lines[0]["logger"])
	assert.Equal(t, "fixture", lines[0][ComponentKey])
	assert.EqualValues(t, 1000, lines[0][SamplesKey])
	assert.EqualValues(t, 6, lines[0][FeaturesKey])
}

func TestZerologProvider_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProviderWithWriter(&buf, LevelWarn)
	logger := p.GetLogger()

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "error", lines[1]["level"])

	// Loggers handed out earlier follow later level changes.
	buf.Reset()
	p.SetLevel(LevelDisabled)
	logger.Error("dropped")
	assert.Empty(t, buf.String())
}

func TestZerologProvider_OddFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProviderWithWriter(&buf, LevelInfo)

	p.GetLogger().Info("odd", "key")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "(MISSING)", lines[0]["key"])
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, LevelInfo)
	t.Cleanup(func() { SetProvider(NewZerologProvider(LevelInfo)) })

	LogError(errors.New("write failed"), "Failed to write fixture", OperationKey, OperationWrite)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "write failed", lines[0][ErrorKey])
	assert.Equal(t, OperationWrite, lines[0][OperationKey])
}
