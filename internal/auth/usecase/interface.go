// Package usecase implements authentication business logic: issuing,
// validating, and revoking session tokens.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	authDomain "github.com/allisson/notevault/internal/auth/domain"
)

// TokenRepository defines the interface for token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error
	GetByHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)
	Revoke(ctx context.Context, tokenID uuid.UUID) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// AccountGetter resolves an authenticated token to its account.
type AccountGetter interface {
	Get(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error)
}

// TokenUseCase defines the interface for session token business logic.
type TokenUseCase interface {
	// Issue creates a session token for an account. The plain token is
	// returned once and never stored.
	Issue(ctx context.Context, accountID uuid.UUID) (plainToken string, token *authDomain.Token, err error)
	// Authenticate resolves a presented plain token to its account, rejecting
	// unknown, expired, and revoked tokens.
	Authenticate(ctx context.Context, plainToken string) (*accountDomain.Account, error)
	// Revoke invalidates a presented token (logout).
	Revoke(ctx context.Context, plainToken string) error
	// PurgeExpired removes tokens whose lifetime elapsed before now.
	PurgeExpired(ctx context.Context) (int64, error)
}
