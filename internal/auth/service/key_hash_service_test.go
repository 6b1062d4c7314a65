package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyHashService(t *testing.T) {
	svc := NewKeyHashService()
	authKey := []byte("client-derived-auth-key-material")

	hash, err := svc.Hash(authKey)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotContains(t, hash, string(authKey))

	t.Run("CompareMatches", func(t *testing.T) {
		assert.True(t, svc.Compare(authKey, hash))
	})

	t.Run("CompareRejectsWrongKey", func(t *testing.T) {
		assert.False(t, svc.Compare([]byte("different-key-material"), hash))
	})

	t.Run("CompareRejectsGarbageHash", func(t *testing.T) {
		assert.False(t, svc.Compare(authKey, "not-a-valid-hash"))
	})

	t.Run("HashesAreSalted", func(t *testing.T) {
		other, err := svc.Hash(authKey)
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}
