package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
)

type loggingConfig struct {
	ignorePaths []string
}

type LoggerOption func(*loggingConfig)

func WithIgnorePath(paths []string) LoggerOption {
	return func(c *loggingConfig) {
		c.ignorePaths = append(c.ignorePaths, paths...)
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// NewLogging logs one line per request once the handler chain has returned.
func NewLogging(logger *slog.Logger, options ...LoggerOption) gin.HandlerFunc {
	config := &loggingConfig{}
	for _, option := range options {
		option(config)
	}

	return func(c *gin.Context) {
		if slices.Contains(config.ignorePaths, c.Request.URL.Path) {
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attributes := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", c.FullPath()),
			slog.Int64("request_size", max(c.Request.ContentLength, 0)),
			slog.Int("response_size", max(c.Writer.Size(), 0)),
			slog.String("client_ip", c.ClientIP()),
		}
		if filename := c.Param("filename"); filename != "" {
			attributes = append(attributes, slog.String("filename", filename))
		}
		if len(c.Errors) > 0 {
			attributes = append(attributes, slog.String("error", c.Errors.String()))
		}

		logger.LogAttrs(c.Request.Context(), levelForStatus(status),
			fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path), attributes...)
	}
}
