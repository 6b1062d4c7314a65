package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
)

func rateLimitedRouter(rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(RateLimitMiddleware(rps, burst, testLogger()))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func requestAsAccount(router *gin.Engine, account *accountDomain.Account) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if account != nil {
		req = req.WithContext(WithAccount(req.Context(), account))
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("AllowsWithinBurst", func(t *testing.T) {
		router := rateLimitedRouter(1, 3)
		account := &accountDomain.Account{ID: uuid.Must(uuid.NewV7())}

		for i := 0; i < 3; i++ {
			w := requestAsAccount(router, account)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("BlocksOverBurst", func(t *testing.T) {
		router := rateLimitedRouter(1, 2)
		account := &accountDomain.Account{ID: uuid.Must(uuid.NewV7())}

		requestAsAccount(router, account)
		requestAsAccount(router, account)
		w := requestAsAccount(router, account)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("IndependentLimitersPerAccount", func(t *testing.T) {
		router := rateLimitedRouter(1, 1)
		first := &accountDomain.Account{ID: uuid.Must(uuid.NewV7())}
		second := &accountDomain.Account{ID: uuid.Must(uuid.NewV7())}

		assert.Equal(t, http.StatusOK, requestAsAccount(router, first).Code)
		assert.Equal(t, http.StatusTooManyRequests, requestAsAccount(router, first).Code)
		assert.Equal(t, http.StatusOK, requestAsAccount(router, second).Code)
	})

	t.Run("NoAccountInContext", func(t *testing.T) {
		router := rateLimitedRouter(1, 1)

		w := requestAsAccount(router, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
