// Package service provides the cryptographic services for the vault: AEAD
// ciphers (AES-256-GCM, ChaCha20-Poly1305), the Argon2id key derivation
// function, and the key manager that wraps and unwraps the account DEK.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
//
// Implementations are stateless with respect to nonces: every Encrypt call
// generates a fresh random 12-byte nonce, and the nonce must be stored
// alongside the ciphertext for later decryption.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	// Fails with domain.ErrDecryptionFailed if authentication fails, without
	// distinguishing a wrong key from tampered ciphertext.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver derives key material from a passphrase.
type KeyDeriver interface {
	// DeriveKeys derives the KEK and the server auth key from the passphrase,
	// salt, and KDF parameters. The KEK never leaves the client process; the
	// auth key is what the client presents to the server at login.
	DeriveKeys(passphrase string, salt []byte, params cryptoDomain.KdfParams) (kek, authKey []byte, err error)

	// GenerateSalt generates a fresh random salt of params.SaltLength bytes.
	GenerateSalt(params cryptoDomain.KdfParams) ([]byte, error)
}

// KeyManager manages the account's Data Encryption Key lifecycle:
// generation at signup, wrapping under the passphrase-derived KEK, and
// unwrapping at login.
type KeyManager interface {
	// GenerateDek generates a cryptographically random 256-bit DEK.
	// Called exactly once, at account creation.
	GenerateDek() ([]byte, error)

	// WrapDek encrypts the DEK under the KEK, binding the supplied AAD.
	WrapDek(dek, kek, aad []byte, alg cryptoDomain.Algorithm) (cryptoDomain.WrappedDek, error)

	// UnwrapDek decrypts a wrapped DEK with the KEK. Fails with
	// domain.ErrWrongPassphrase when the KEK does not match.
	UnwrapDek(wrapped cryptoDomain.WrappedDek, kek, aad []byte) ([]byte, error)
}

// KMSKeeper abstracts a gocloud.dev secrets keeper used by the server to wrap
// stored key blobs at rest.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
