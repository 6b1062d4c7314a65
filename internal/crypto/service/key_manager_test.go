package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

func TestNewKeyManager(t *testing.T) {
	aeadManager := NewAEADManager()
	km := NewKeyManager(aeadManager)
	assert.NotNil(t, km)
	assert.NotNil(t, km.aeadManager)
}

func TestKeyManagerService_GenerateDek(t *testing.T) {
	km := NewKeyManager(NewAEADManager())

	t.Run("generates 32-byte keys", func(t *testing.T) {
		dek, err := km.GenerateDek()
		require.NoError(t, err)
		assert.Len(t, dek, cryptoDomain.KeySize)
	})

	t.Run("keys are random", func(t *testing.T) {
		dek1, err := km.GenerateDek()
		require.NoError(t, err)
		dek2, err := km.GenerateDek()
		require.NoError(t, err)
		assert.NotEqual(t, dek1, dek2)
	})
}

func TestKeyManagerService_WrapDek(t *testing.T) {
	km := NewKeyManager(NewAEADManager())
	kek := randomKey(t)
	aad := []byte("account-id")

	dek, err := km.GenerateDek()
	require.NoError(t, err)

	t.Run("wrap with AES-GCM", func(t *testing.T) {
		wrapped, err := km.WrapDek(dek, kek, aad, cryptoDomain.AESGCM)
		require.NoError(t, err)

		assert.Equal(t, cryptoDomain.AESGCM, wrapped.Algorithm)
		assert.Len(t, wrapped.Nonce, cryptoDomain.NonceSize)
		assert.NotContains(t, string(wrapped.Ciphertext), string(dek))
		assert.Len(t, wrapped.Ciphertext, cryptoDomain.KeySize+cryptoDomain.TagSize)
	})

	t.Run("wrap with ChaCha20-Poly1305", func(t *testing.T) {
		wrapped, err := km.WrapDek(dek, kek, aad, cryptoDomain.ChaCha20)
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.ChaCha20, wrapped.Algorithm)
	})

	t.Run("wrap with invalid DEK size", func(t *testing.T) {
		_, err := km.WrapDek(make([]byte, 16), kek, aad, cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("wrap with invalid KEK size", func(t *testing.T) {
		_, err := km.WrapDek(dek, make([]byte, 16), aad, cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("wrap with unsupported algorithm", func(t *testing.T) {
		_, err := km.WrapDek(dek, kek, aad, cryptoDomain.Algorithm("invalid"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})
}

func TestKeyManagerService_UnwrapDek(t *testing.T) {
	km := NewKeyManager(NewAEADManager())
	kek := randomKey(t)
	aad := []byte("account-id")

	dek, err := km.GenerateDek()
	require.NoError(t, err)

	wrapped, err := km.WrapDek(dek, kek, aad, cryptoDomain.AESGCM)
	require.NoError(t, err)

	t.Run("correct KEK returns the DEK bit-for-bit", func(t *testing.T) {
		unwrapped, err := km.UnwrapDek(wrapped, kek, aad)
		require.NoError(t, err)
		assert.Equal(t, dek, unwrapped)
	})

	t.Run("wrong KEK fails with ErrWrongPassphrase", func(t *testing.T) {
		_, err := km.UnwrapDek(wrapped, randomKey(t), aad)
		assert.ErrorIs(t, err, cryptoDomain.ErrWrongPassphrase)
	})

	t.Run("wrong AAD fails with ErrWrongPassphrase", func(t *testing.T) {
		// An account-id mismatch is indistinguishable from a wrong key at the
		// cipher level, so it surfaces the same way.
		_, err := km.UnwrapDek(wrapped, kek, []byte("other-account"))
		assert.ErrorIs(t, err, cryptoDomain.ErrWrongPassphrase)
	})

	t.Run("tampered wrap fails with ErrWrongPassphrase", func(t *testing.T) {
		tampered := wrapped
		tampered.Ciphertext = make([]byte, len(wrapped.Ciphertext))
		copy(tampered.Ciphertext, wrapped.Ciphertext)
		tampered.Ciphertext[0] ^= 0x01

		_, err := km.UnwrapDek(tampered, kek, aad)
		assert.ErrorIs(t, err, cryptoDomain.ErrWrongPassphrase)
	})

	t.Run("invalid KEK size is not reported as wrong passphrase", func(t *testing.T) {
		_, err := km.UnwrapDek(wrapped, make([]byte, 16), aad)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
		assert.NotErrorIs(t, err, cryptoDomain.ErrWrongPassphrase)
	})

	t.Run("rotation re-wrap preserves the DEK", func(t *testing.T) {
		// Passphrase rotation derives a new KEK and re-wraps the same DEK.
		newKek := randomKey(t)
		rewrapped, err := km.WrapDek(dek, newKek, aad, cryptoDomain.AESGCM)
		require.NoError(t, err)

		// Old wrap still opens with the old KEK until the swap commits.
		fromOld, err := km.UnwrapDek(wrapped, kek, aad)
		require.NoError(t, err)
		fromNew, err := km.UnwrapDek(rewrapped, newKek, aad)
		require.NoError(t, err)

		assert.Equal(t, fromOld, fromNew)
	})
}
