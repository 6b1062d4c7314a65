package service

import (
	"crypto/rand"
	"errors"
	"fmt"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

// KeyManagerService implements the KeyManager interface for the vault's
// envelope encryption.
//
// The service manages the account Data Encryption Key lifecycle:
//   - the DEK is generated once, at account creation
//   - the DEK is wrapped under the passphrase-derived KEK before it leaves memory
//   - at login the stored wrap is unwrapped with the recomputed KEK
//
// Passphrase rotation re-wraps the same DEK under the new KEK; note
// ciphertexts are never re-encrypted. The service uses AEADManager to create
// cipher instances, keeping the wrap format identical to the note format.
type KeyManagerService struct {
	aeadManager AEADManager
}

// NewKeyManager creates a new KeyManagerService instance with the provided AEADManager.
func NewKeyManager(aeadManager AEADManager) *KeyManagerService {
	return &KeyManagerService{
		aeadManager: aeadManager,
	}
}

// GenerateDek generates a cryptographically random 256-bit DEK.
//
// The caller owns the returned slice and must zero it (cryptoDomain.Zero)
// once it is wrapped or handed to a session.
func (km *KeyManagerService) GenerateDek() ([]byte, error) {
	dek := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(dek); err != nil {
		return nil, fmt.Errorf("failed to generate DEK: %w", err)
	}
	return dek, nil
}

// WrapDek encrypts the DEK under the KEK with the specified algorithm,
// binding the supplied AAD (the account UUID) so a wrapped key cannot be
// transplanted between account records.
func (km *KeyManagerService) WrapDek(
	dek, kek, aad []byte,
	alg cryptoDomain.Algorithm,
) (cryptoDomain.WrappedDek, error) {
	if len(dek) != cryptoDomain.KeySize {
		return cryptoDomain.WrappedDek{}, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := km.aeadManager.CreateCipher(kek, alg)
	if err != nil {
		return cryptoDomain.WrappedDek{}, err
	}

	ciphertext, nonce, err := aead.Encrypt(dek, aad)
	if err != nil {
		return cryptoDomain.WrappedDek{}, fmt.Errorf("failed to wrap DEK: %w", err)
	}

	return cryptoDomain.WrappedDek{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Algorithm:  alg,
	}, nil
}

// UnwrapDek decrypts a wrapped DEK using the passphrase-derived KEK.
//
// An authentication failure here means the KEK is wrong: the stored nonce and
// ciphertext are known-good, so the failure is surfaced as ErrWrongPassphrase.
// This is the only place a decryption failure is given a specific user-facing
// meaning. Invalid key or nonce sizes are reported as such, not as a wrong
// passphrase.
func (km *KeyManagerService) UnwrapDek(
	wrapped cryptoDomain.WrappedDek,
	kek, aad []byte,
) ([]byte, error) {
	aead, err := km.aeadManager.CreateCipher(kek, wrapped.Algorithm)
	if err != nil {
		return nil, err
	}

	dek, err := aead.Decrypt(wrapped.Ciphertext, wrapped.Nonce, aad)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrDecryptionFailed) {
			return nil, cryptoDomain.ErrWrongPassphrase
		}
		return nil, err
	}

	return dek, nil
}
