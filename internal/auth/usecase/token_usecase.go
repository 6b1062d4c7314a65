package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	authDomain "github.com/allisson/notevault/internal/auth/domain"
	authService "github.com/allisson/notevault/internal/auth/service"
	apperrors "github.com/allisson/notevault/internal/errors"
)

// tokenUseCase implements the TokenUseCase interface.
type tokenUseCase struct {
	tokenRepo    TokenRepository
	accounts     AccountGetter
	tokenService authService.TokenService
	expiration   time.Duration
}

// Issue creates a session token for an account.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	accountID uuid.UUID,
) (string, *authDomain.Token, error) {
	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		AccountID: accountID,
		ExpiresAt: now.Add(t.expiration),
		CreatedAt: now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return "", nil, err
	}

	return plainToken, token, nil
}

// Authenticate resolves a presented plain token to its account.
func (t *tokenUseCase) Authenticate(
	ctx context.Context,
	plainToken string,
) (*accountDomain.Account, error) {
	tokenHash := t.tokenService.HashToken(plainToken)

	token, err := t.tokenRepo.GetByHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	if token.RevokedAt != nil {
		return nil, authDomain.ErrTokenRevoked
	}
	if !time.Now().UTC().Before(token.ExpiresAt) {
		return nil, authDomain.ErrTokenExpired
	}

	return t.accounts.Get(ctx, token.AccountID)
}

// Revoke invalidates a presented token. Revoking an unknown token is not an
// error: logout must be idempotent.
func (t *tokenUseCase) Revoke(ctx context.Context, plainToken string) error {
	tokenHash := t.tokenService.HashToken(plainToken)

	token, err := t.tokenRepo.GetByHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrTokenNotFound) {
			return nil
		}
		return err
	}

	return t.tokenRepo.Revoke(ctx, token.ID)
}

// PurgeExpired removes tokens whose lifetime elapsed before now.
func (t *tokenUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	return t.tokenRepo.DeleteExpired(ctx, time.Now().UTC())
}

// NewTokenUseCase creates a new token use case instance with the provided dependencies.
func NewTokenUseCase(
	tokenRepo TokenRepository,
	accounts AccountGetter,
	tokenService authService.TokenService,
	expiration time.Duration,
) TokenUseCase {
	return &tokenUseCase{
		tokenRepo:    tokenRepo,
		accounts:     accounts,
		tokenService: tokenService,
		expiration:   expiration,
	}
}
