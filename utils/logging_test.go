package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Json(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LoggingFormatJson)

	logger.Warn("storage operation attempt failed", slog.Int("attempt", 2))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "storage operation attempt failed", line["message"])
	assert.Equal(t, "WARNING", line["severity"])
	assert.Equal(t, 2.0, line["attempt"])
	assert.NotContains(t, line, "msg")
	assert.NotContains(t, line, "level")
}

func TestGCPLoggerAttributeReplacer(t *testing.T) {
	cases := map[slog.Level]string{
		slog.LevelDebug:     "DEBUG",
		slog.LevelInfo:      "INFO",
		slog.LevelInfo + 2:  "INFO",
		slog.LevelWarn:      "WARNING",
		slog.LevelError:     "ERROR",
		slog.LevelError + 4: "ERROR",
	}
	for level, severity := range cases {
		a := GCPLoggerAttributeReplacer(nil, slog.Any(slog.LevelKey, level))
		assert.Equal(t, "severity", a.Key)
		assert.Equal(t, severity, a.Value.String(), level.String())
	}

	// attributes inside groups are left alone
	a := GCPLoggerAttributeReplacer([]string{"request"}, slog.String("msg", "x"))
	assert.Equal(t, "msg", a.Key)
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LoggingFormatText).Debug("hello", slog.String("filename", "report.csv"))

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "filename=report.csv")
}
