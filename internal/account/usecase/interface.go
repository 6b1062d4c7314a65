// Package usecase implements the business logic for vault account management:
// signup, login with lockout, pre-login KDF parameter discovery, and the
// all-or-nothing passphrase rotation that swaps the wrapped DEK.
package usecase

import (
	"context"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	authDomain "github.com/allisson/notevault/internal/auth/domain"
	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	Create(ctx context.Context, account *accountDomain.Account) error
	Get(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error)
	GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error)
	UpdateLoginState(ctx context.Context, account *accountDomain.Account) error
	UpdateWrappedDek(ctx context.Context, account *accountDomain.Account, expectedKeyVersion uint) error
}

// TokenIssuer issues bearer tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(ctx context.Context, accountID uuid.UUID) (plainToken string, token *authDomain.Token, err error)
}

// OTPVerifier asserts the caller passed a second-factor check. Passphrase
// rotation swaps the account's entire credential set, so it is gated behind
// this boundary; generation and delivery of codes live outside this module.
type OTPVerifier interface {
	// Verify checks the one-time code for the account. A failed check returns
	// an error wrapping ErrOTPRequired.
	Verify(ctx context.Context, accountID uuid.UUID, code string) error
}

// SignupInput carries the client-prepared key material for account creation.
// The server receives the derived auth key, never the passphrase or the KEK.
type SignupInput struct {
	Email      string
	AuthKey    []byte
	KdfSalt    []byte
	KdfParams  cryptoDomain.KdfParams
	WrappedDek cryptoDomain.WrappedDek
}

// LoginOutput carries the issued token and the account key material the
// client needs to unwrap its DEK.
type LoginOutput struct {
	PlainToken string
	Token      *authDomain.Token
	Account    *accountDomain.Account
}

// KdfParamsOutput is the pre-login key derivation bundle for an email. It is
// everything the client needs to re-derive its keys before it can
// authenticate.
type KdfParamsOutput struct {
	KdfSalt    []byte
	KdfParams  cryptoDomain.KdfParams
	KeyVersion uint
}

// RotationInput carries the client-prepared replacement credential set for a
// passphrase rotation. The whole set lands atomically or not at all.
type RotationInput struct {
	AuthKey            []byte
	KdfSalt            []byte
	KdfParams          cryptoDomain.KdfParams
	WrappedDek         cryptoDomain.WrappedDek
	ExpectedKeyVersion uint
	OTPCode            string
}

// AccountUseCase defines the business operations for vault accounts.
type AccountUseCase interface {
	// Signup creates a new account from client-prepared key material.
	// Returns ErrAccountAlreadyExists when the email is taken.
	Signup(ctx context.Context, input *SignupInput) (*accountDomain.Account, error)

	// Login verifies the client-derived auth key and issues a bearer token.
	// Failed attempts increment a counter; once the configured threshold is
	// reached the account is locked for the lockout duration and further
	// logins fail with ErrAccountLocked even with correct credentials.
	Login(ctx context.Context, email string, authKey []byte) (*LoginOutput, error)

	// GetKdfParams returns the salt and KDF parameters for an email so the
	// client can derive its keys before login. No authentication required.
	GetKdfParams(ctx context.Context, email string) (*KdfParamsOutput, error)

	// RotateWrappedDek atomically replaces the account's auth key hash, KDF
	// salt and parameters, and wrapped DEK, guarded by the expected key
	// version. Requires a valid one-time code. Returns ErrKeyVersionConflict
	// when a concurrent rotation won the race.
	RotateWrappedDek(ctx context.Context, accountID uuid.UUID, input *RotationInput) (*accountDomain.Account, error)
}
