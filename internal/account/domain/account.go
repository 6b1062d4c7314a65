// Package domain defines the core domain models for vault accounts. An
// account stores everything the server needs to authenticate a client and
// hand back its encrypted key material: the server never sees the passphrase,
// the key-encryption key, or the unwrapped data encryption key.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

// Account represents a vault account with its key-derivation parameters and
// wrapped Data Encryption Key.
type Account struct {
	// ID is the unique identifier for this account.
	ID uuid.UUID
	// Email is the account's login identifier.
	Email string
	// AuthKeyHash is the server-side hash of the client-derived authentication
	// key. The client derives two keys from the passphrase; only this half
	// ever reaches the server, and it is hashed again before storage.
	AuthKeyHash string
	// KdfSalt is the random salt for passphrase key derivation. The client
	// fetches it at login to re-derive its keys.
	KdfSalt []byte
	// KdfParams are the Argon2id cost parameters used at signup. Stored
	// per-account so parameters can be raised for new accounts without
	// breaking old ones.
	KdfParams cryptoDomain.KdfParams
	// WrappedDek is the Data Encryption Key wrapped under the client's
	// key-encryption key. Opaque to the server.
	WrappedDek []byte
	// WrappedDekNonce is the nonce used when wrapping the DEK.
	WrappedDekNonce []byte
	// WrappedDekAlgorithm is the AEAD algorithm used for the wrap.
	WrappedDekAlgorithm cryptoDomain.Algorithm
	// KeyVersion increments on every passphrase rotation and guards the
	// wrapped-DEK swap against concurrent rotations.
	KeyVersion uint
	// FailedLoginAttempts counts consecutive failed logins since the last
	// success.
	FailedLoginAttempts int
	// LockedUntil is set when too many logins failed; nil when not locked.
	LockedUntil *time.Time
	// CreatedAt is the UTC timestamp when the account was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last mutation.
	UpdatedAt time.Time
}

// Locked reports whether the account is locked out at the given time.
func (a *Account) Locked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}
