package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/notes?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		offset, limit, err := ParsePagination(paginationContext(""))
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("ExplicitValues", func(t *testing.T) {
		offset, limit, err := ParsePagination(paginationContext("offset=20&limit=10"))
		require.NoError(t, err)
		assert.Equal(t, 20, offset)
		assert.Equal(t, 10, limit)
	})

	t.Run("NegativeOffset", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext("offset=-1"))
		require.Error(t, err)
	})

	t.Run("LimitTooLarge", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext("limit=101"))
		require.Error(t, err)
	})

	t.Run("NonNumeric", func(t *testing.T) {
		_, _, err := ParsePagination(paginationContext("offset=abc"))
		require.Error(t, err)
	})
}
