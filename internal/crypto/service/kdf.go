package service

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

// derivedKeyLength is the total Argon2id output: 32 bytes of KEK followed by
// 32 bytes of server auth key.
const derivedKeyLength = 2 * cryptoDomain.KeySize

// Argon2Deriver implements KeyDeriver using Argon2id.
//
// Argon2id is the Password Hashing Competition winner and resists both
// GPU-based and side-channel attacks. The derivation is deliberately expensive
// so offline guessing against a stolen account record stays impractical; the
// cost parameters live in the account record and can be raised over time.
//
// A single derivation produces 64 bytes split into two independent keys:
//
//	bytes  0..31  KEK       (wraps the DEK, never leaves the client)
//	bytes 32..63  auth key  (presented to the server at login)
//
// The split guarantees the server never receives material that could unwrap
// the DEK, while login remains verifiable server-side.
type Argon2Deriver struct{}

// NewArgon2Deriver creates a new Argon2id key deriver.
func NewArgon2Deriver() *Argon2Deriver {
	return &Argon2Deriver{}
}

// DeriveKeys derives the KEK and server auth key from the passphrase, salt,
// and KDF parameters. It is a pure function of its inputs: the same
// passphrase, salt, and parameters always produce the same keys.
func (d *Argon2Deriver) DeriveKeys(
	passphrase string,
	salt []byte,
	params cryptoDomain.KdfParams,
) (kek, authKey []byte, err error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if len(salt) < cryptoDomain.MinSaltLength {
		return nil, nil, cryptoDomain.ErrInvalidKdfParams
	}

	derived := argon2.IDKey(
		[]byte(passphrase),
		salt,
		params.Time,
		params.Memory,
		params.Threads,
		derivedKeyLength,
	)

	kek = derived[:cryptoDomain.KeySize]
	authKey = derived[cryptoDomain.KeySize:]
	return kek, authKey, nil
}

// GenerateSalt generates a fresh random salt of params.SaltLength bytes.
func (d *Argon2Deriver) GenerateSalt(params cryptoDomain.KdfParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
