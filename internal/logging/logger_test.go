package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestWithContextAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "json", Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithAdminID(ctx, 42)
	logger.WithContext(ctx).Info().Msg("hello")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(42), entry["admin_id"])
	assert.Equal(t, "backstage", entry["service"])
	assert.Equal(t, "hello", entry["message"])
}

func TestHTTPRequestLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{status: http.StatusOK, level: "info"},
		{status: http.StatusNotFound, level: "warn"},
		{status: http.StatusInternalServerError, level: "error"},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		logger := New(Config{Level: "info", Output: &buf})

		logger.HTTPRequest(context.Background(), http.MethodGet, "/api/artists", tc.status, 5*time.Millisecond)

		entry := decodeLine(t, &buf)
		assert.Equal(t, tc.level, entry["level"], "status %d", tc.status)
		assert.Equal(t, float64(tc.status), entry["status_code"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "error", Output: &buf})

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("also dropped")
	assert.Zero(t, buf.Len())
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "chatty", Output: &buf})

	logger.Info("kept")
	assert.NotZero(t, buf.Len())
}
