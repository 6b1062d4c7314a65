package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.Default()

	t.Run("DisabledReturnsNil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://example.com", logger))
	})

	t.Run("EnabledWithoutOriginsReturnsNil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "", logger))
	})

	t.Run("EnabledWithOrigins", func(t *testing.T) {
		assert.NotNil(t, createCORSMiddleware(true, "https://app.example.com,https://sync.example.com", logger))
	})
}

func TestParseOrigins(t *testing.T) {
	t.Run("CommaSeparated", func(t *testing.T) {
		origins := parseOrigins("https://app.example.com,https://sync.example.com")
		assert.Equal(t, []string{"https://app.example.com", "https://sync.example.com"}, origins)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		origins := parseOrigins(" https://app.example.com , https://sync.example.com ")
		assert.Equal(t, []string{"https://app.example.com", "https://sync.example.com"}, origins)
	})

	t.Run("EmptyString", func(t *testing.T) {
		assert.Nil(t, parseOrigins(""))
	})
}

func TestCORSIntegration(t *testing.T) {
	logger := slog.Default()

	newRouter := func(middleware gin.HandlerFunc) *gin.Engine {
		router := gin.New()
		if middleware != nil {
			router.Use(middleware)
		}
		router.POST("/v1/notes", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	t.Run("HeadersAddedWhenEnabled", func(t *testing.T) {
		router := newRouter(createCORSMiddleware(true, "https://app.example.com", logger))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/notes", nil)
		req.Header.Set("Origin", "https://app.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("NoHeadersWhenDisabled", func(t *testing.T) {
		router := newRouter(createCORSMiddleware(false, "https://app.example.com", logger))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/notes", nil)
		req.Header.Set("Origin", "https://app.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("PreflightRequestHandled", func(t *testing.T) {
		router := newRouter(createCORSMiddleware(true, "https://app.example.com", logger))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/notes", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}
