// Package domain defines authentication domain models. Sessions use opaque
// bearer tokens: the server stores only a SHA-256 hash, so a database leak
// does not leak usable credentials.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token represents a session token issued at login.
type Token struct {
	// ID is the unique identifier for this token.
	ID uuid.UUID
	// TokenHash is the SHA-256 hex digest of the plain token.
	TokenHash string
	// AccountID identifies the account this token authenticates.
	AccountID uuid.UUID
	// ExpiresAt is when the token stops being accepted.
	ExpiresAt time.Time
	// RevokedAt marks an explicit logout (nil while the token is live).
	RevokedAt *time.Time
	// CreatedAt is the UTC timestamp when the token was issued.
	CreatedAt time.Time
}

// Live reports whether the token is usable at the given time.
func (t *Token) Live(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
