package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	"github.com/allisson/notevault/internal/metrics"
)

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Signup records metrics for account registration operations.
func (a *accountUseCaseWithMetrics) Signup(
	ctx context.Context,
	input *SignupInput,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Signup(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "account_signup", status)
	a.metrics.RecordDuration(ctx, "account", "account_signup", time.Since(start), status)

	return account, err
}

// Login records metrics for login operations.
func (a *accountUseCaseWithMetrics) Login(
	ctx context.Context,
	email string,
	authKey []byte,
) (*LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, email, authKey)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "account_login", status)
	a.metrics.RecordDuration(ctx, "account", "account_login", time.Since(start), status)

	return output, err
}

// GetKdfParams records metrics for KDF parameter lookups.
func (a *accountUseCaseWithMetrics) GetKdfParams(
	ctx context.Context,
	email string,
) (*KdfParamsOutput, error) {
	start := time.Now()
	output, err := a.next.GetKdfParams(ctx, email)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "account_kdf_params", status)
	a.metrics.RecordDuration(ctx, "account", "account_kdf_params", time.Since(start), status)

	return output, err
}

// RotateWrappedDek records metrics for passphrase rotation operations.
func (a *accountUseCaseWithMetrics) RotateWrappedDek(
	ctx context.Context,
	accountID uuid.UUID,
	input *RotationInput,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.RotateWrappedDek(ctx, accountID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "account_rotate", status)
	a.metrics.RecordDuration(ctx, "account", "account_rotate", time.Since(start), status)

	return account, err
}
