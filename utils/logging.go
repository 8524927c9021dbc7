package utils

import (
	"io"
	"log/slog"
	"os"
)

const (
	LoggingFormatJson = "json"
	LoggingFormatText = "text"
)

// NewLogger writes to stdout, as json readable by GCP logging or as text for local use.
func NewLogger(format string) *slog.Logger {
	return newLogger(os.Stdout, format)
}

func newLogger(w io.Writer, format string) *slog.Logger {
	if format == LoggingFormatJson {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			ReplaceAttr: GCPLoggerAttributeReplacer,
		}))
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

var gcpSeverities = []struct {
	below    slog.Level
	severity string
}{
	{slog.LevelInfo, "DEBUG"},
	{slog.LevelWarn, "INFO"},
	{slog.LevelError, "WARNING"},
}

// GCPLoggerAttributeReplacer renames the message and level keys the way Cloud Logging expects them.
func GCPLoggerAttributeReplacer(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.MessageKey:
		a.Key = "message"
	case slog.LevelKey:
		a.Key = "severity"
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		a.Value = slog.StringValue("ERROR")
		for _, s := range gcpSeverities {
			if level < s.below {
				a.Value = slog.StringValue(s.severity)
				break
			}
		}
	}
	return a
}
