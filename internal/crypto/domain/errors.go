package domain

import (
	"github.com/allisson/notevault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// All keys (KEKs and DEKs) must be exactly 32 bytes (256 bits) for both
	// AES-256-GCM and ChaCha20-Poly1305.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonceSize indicates the nonce is not the expected 12 bytes.
	ErrInvalidNonceSize = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrInvalidKdfParams indicates the key derivation parameters are malformed
	// (zero time or memory cost, zero threads, or salt below the minimum length).
	ErrInvalidKdfParams = errors.Wrap(errors.ErrInvalidInput, "invalid kdf parameters")

	// ErrDecryptionFailed indicates an authenticated decryption operation failed.
	//
	// This error can occur due to a wrong key, tampered ciphertext, a wrong
	// nonce, or corrupted data. The specific cause is deliberately not
	// disclosed: distinguishing "wrong key" from "tampered ciphertext" would
	// give an attacker an oracle.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrWrongPassphrase indicates a wrapped DEK could not be unwrapped with the
	// key derived from the supplied passphrase.
	//
	// This is the only place a decryption failure carries a specific meaning:
	// during unwrap the caller already knows the stored nonce and ciphertext are
	// intact, so the only variable is the passphrase-derived key.
	ErrWrongPassphrase = errors.Wrap(errors.ErrUnauthorized, "wrong passphrase")
)
