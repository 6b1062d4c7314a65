package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/notevault/internal/errors"
)

// keyHashService implements KeyHashService using Argon2id.
type keyHashService struct {
	hasher *pwdhash.PasswordHasher
}

// Hash hashes a client-derived authentication key using Argon2id.
func (k *keyHashService) Hash(authKey []byte) (string, error) {
	hashed, err := k.hasher.Hash(authKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash authentication key")
	}
	return hashed, nil
}

// Compare performs a constant-time comparison between an authentication key
// and its stored hash.
func (k *keyHashService) Compare(authKey []byte, hash string) bool {
	ok, err := k.hasher.Verify(authKey, hash)
	if err != nil {
		return false
	}
	return ok
}

// NewKeyHashService creates a new KeyHashService instance using Argon2id
// hashing with the Moderate policy: the input is already a slow-derived key,
// so the server-side hash mostly guards against database leaks.
func NewKeyHashService() KeyHashService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &keyHashService{
		hasher: hasher,
	}
}
