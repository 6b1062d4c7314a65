package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("Success_CreateProviderWithNamespace", func(t *testing.T) {
		provider, err := NewProvider("test_app")

		require.NoError(t, err)
		assert.NotNil(t, provider)
		assert.NotNil(t, provider.meterProvider)
		assert.NotNil(t, provider.exporter)
		assert.NotNil(t, provider.registry)
	})

	t.Run("Success_CreateProviderWithEmptyNamespace", func(t *testing.T) {
		provider, err := NewProvider("")

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})
}

func TestProvider_MeterProvider(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	meterProvider := provider.MeterProvider()
	assert.NotNil(t, meterProvider)
}

func TestProvider_Handler(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	handler := provider.Handler()
	assert.NotNil(t, handler)
}

func TestProvider_HandlerServesMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	// Record something so the exposition is not empty
	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)
	businessMetrics.RecordOperation(context.Background(), "note", "note_create", "success")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "test_app_operations_total")
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_ShutdownProvider", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		err = provider.Shutdown(context.Background())
		assert.NoError(t, err)
	})

	t.Run("Success_ShutdownNilProvider", func(t *testing.T) {
		provider := &Provider{meterProvider: nil}

		err := provider.Shutdown(context.Background())
		assert.NoError(t, err)
	})
}
