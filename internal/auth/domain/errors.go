package domain

import (
	"github.com/allisson/notevault/internal/errors"
)

// Authentication errors.
var (
	// ErrTokenNotFound indicates no token matches the presented credential.
	ErrTokenNotFound = errors.Wrap(errors.ErrUnauthorized, "token not found")

	// ErrTokenExpired indicates the token's lifetime has elapsed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrTokenRevoked indicates the token was explicitly revoked (logout).
	ErrTokenRevoked = errors.Wrap(errors.ErrUnauthorized, "token revoked")
)
