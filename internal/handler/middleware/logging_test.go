//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"venue-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := NewLogger(config.LogConfig{Level: "error", TimeZone: "Europe/Rome", TimeFormat: "2006-01-02", TimeZoneOffset: 3600})
	r := gin.New()
	r.Use(l.LoggingMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	r := newLoggedRouter(t)

	t.Run("issues a uuid when the caller sends none", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.Equal(t, http.StatusOK, w.Code)
		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses the upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "edge-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "edge-42", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "edge-42", w.Body.String())
	})

	t.Run("replaces an oversized upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "ERROR", levelFor("/api/bookings", 503).String())
	assert.Equal(t, "WARN", levelFor("/api/bookings", 409).String())
	assert.Equal(t, "DEBUG", levelFor("/health", 200).String())
	assert.Equal(t, "INFO", levelFor("/api/bookings", 201).String())
}
