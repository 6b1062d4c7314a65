package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func loginRateLimitedRouter(rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(LoginRateLimitMiddleware(rps, burst, testLogger()))
	router.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func requestFromIP(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	t.Run("AllowsWithinBurst", func(t *testing.T) {
		router := loginRateLimitedRouter(1, 3)

		for i := 0; i < 3; i++ {
			w := requestFromIP(router, "10.0.0.1:12345")
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("BlocksOverBurst", func(t *testing.T) {
		router := loginRateLimitedRouter(1, 2)

		requestFromIP(router, "10.0.0.2:12345")
		requestFromIP(router, "10.0.0.2:12345")
		w := requestFromIP(router, "10.0.0.2:12345")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("IndependentLimitersPerIP", func(t *testing.T) {
		router := loginRateLimitedRouter(1, 1)

		assert.Equal(t, http.StatusOK, requestFromIP(router, "10.0.0.3:12345").Code)
		assert.Equal(t, http.StatusTooManyRequests, requestFromIP(router, "10.0.0.3:12345").Code)
		assert.Equal(t, http.StatusOK, requestFromIP(router, "10.0.0.4:12345").Code)
	})
}
