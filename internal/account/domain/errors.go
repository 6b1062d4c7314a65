package domain

import (
	"github.com/allisson/notevault/internal/errors"
)

// Account-specific error definitions.
var (
	// ErrAccountNotFound indicates the account does not exist.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")
	// ErrAccountAlreadyExists indicates an account with the same email already exists.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")
	// ErrInvalidCredentials indicates the presented authentication key does
	// not match the stored hash.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
	// ErrAccountLocked indicates the account is locked out after too many
	// failed logins.
	ErrAccountLocked = errors.Wrap(errors.ErrLocked, "account locked")
	// ErrKeyVersionConflict indicates a concurrent passphrase rotation moved
	// the key version; the caller must re-fetch and restart the rotation.
	ErrKeyVersionConflict = errors.Wrap(errors.ErrConflict, "key version conflict")
	// ErrOTPRequired indicates passphrase rotation was attempted without a
	// valid second factor.
	ErrOTPRequired = errors.Wrap(errors.ErrForbidden, "one-time password verification required")
)
