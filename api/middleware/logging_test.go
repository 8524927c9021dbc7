package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	r := gin.New()
	r.Use(NewLogging(logger, WithIgnorePath([]string{"/liveness"})))
	r.GET("/liveness", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/csv/:filename", func(c *gin.Context) {
		c.String(http.StatusNotFound, "File not found")
	})
	return r
}

func TestNewLogging(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/csv/report.csv", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET /csv/report.csv", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, 404.0, line["status"])
	assert.Equal(t, "/csv/:filename", line["route"])
	assert.Equal(t, "report.csv", line["filename"])
	assert.Equal(t, float64(len("File not found")), line["response_size"])
}

func TestNewLogging_IgnoredPath(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/liveness", nil))

	assert.Empty(t, strings.TrimSpace(buf.String()))
}

func TestLevelForStatus(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, levelForStatus(http.StatusOK))
	assert.Equal(t, slog.LevelWarn, levelForStatus(http.StatusRequestEntityTooLarge))
	assert.Equal(t, slog.LevelError, levelForStatus(http.StatusServiceUnavailable))
}
