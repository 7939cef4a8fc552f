package observability

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/aastha-chatbot/internal/config"
)

func TestMetricsQueryCounters(t *testing.T) {
	m := NewMetrics()
	m.QueryReceived()
	m.QueryReceived()
	m.QuerySucceeded()
	m.QueryFailed("empty input")

	assert.Equal(t, QueryStats{Total: 2, Successful: 1, Failed: 1, LastError: "empty input"}, m.Queries())
	assert.Greater(t, m.Uptime(), time.Duration(0))

	var nilMetrics *Metrics
	nilMetrics.QueryReceived()
	assert.Equal(t, QueryStats{}, nilMetrics.Queries())
}

func TestMetricsRouteCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/query/", "POST", 200, time.Millisecond)
	m.RecordRequest("/query/", "POST", 200, time.Millisecond)
	m.RecordError("/query/", "POST", "VALIDATION_FAILED")

	assert.Equal(t, int64(2), m.Requests()["/query/|POST|200"])
	assert.Equal(t, int64(1), m.Errors()["/query/|POST|VALIDATION_FAILED"])
}

func TestNewLoggerWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatbot.log")
	logger, err := NewLogger(config.LoggerConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	LogChat(logger, "/query/", "", "mr", "नमस्कार", "स्वागत")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"message":"chat"`)
	assert.Contains(t, string(raw), `"session_id":"N/A"`)
	assert.Contains(t, string(raw), "नमस्कार")
}

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", resp.Header.Get(RequestIDHeader))

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "fixed-id", logs.All()[1].ContextMap()["request_id"])
	assert.Equal(t, int64(2), metrics.Requests()["/ping|GET|200"])
}
