package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// AES-GCM provides authenticated encryption with associated data, combining
// the confidentiality of AES with the authenticity of GMAC. This implementation
// uses a 256-bit key, a 12-byte random nonce per encryption, and a 16-byte
// authentication tag appended to the ciphertext.
//
// Thread safety: the cipher instance is stateless and safe for concurrent use
// from multiple goroutines. Each encryption operation generates a unique nonce
// independently.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits). Keys should be generated using
// crypto/rand for cryptographic security. Returns ErrInvalidKeySize for any
// other key length.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM with optional additional
// authenticated data.
//
// The AAD is authenticated but not encrypted, binding the ciphertext to
// additional context (this codebase binds the owning record's UUID) so an
// intercepted ciphertext cannot be replayed under a different record. Pass nil
// if no additional data needs to be authenticated.
//
// A unique 12-byte nonce is randomly generated per call using crypto/rand and
// must be stored alongside the ciphertext. With GCM it is critical that nonces
// are never reused with the same key.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM with the provided nonce and AAD.
//
// The same AAD used during encryption must be provided. The authentication tag
// is verified before any plaintext is returned; on failure no partial output
// is produced and the error does not reveal whether the key was wrong or the
// ciphertext was tampered with.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidNonceSize
	}

	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
