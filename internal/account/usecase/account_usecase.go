package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	authService "github.com/allisson/notevault/internal/auth/service"
	cryptoService "github.com/allisson/notevault/internal/crypto/service"
	"github.com/allisson/notevault/internal/database"
	apperrors "github.com/allisson/notevault/internal/errors"
)

// accountUseCase implements the AccountUseCase interface.
type accountUseCase struct {
	txManager         database.TxManager
	accountRepo       AccountRepository
	tokenIssuer       TokenIssuer
	keyHashService    authService.KeyHashService
	otpVerifier       OTPVerifier
	keeper            cryptoService.KMSKeeper
	maxFailedAttempts int
	lockoutDuration   time.Duration
}

// NewAccountUseCase creates a new account use case with its dependencies.
// keeper may be nil; the wrapped DEK is then stored without at-rest wrapping.
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	tokenIssuer TokenIssuer,
	keyHashService authService.KeyHashService,
	otpVerifier OTPVerifier,
	keeper cryptoService.KMSKeeper,
	maxFailedAttempts int,
	lockoutDuration time.Duration,
) AccountUseCase {
	return &accountUseCase{
		txManager:         txManager,
		accountRepo:       accountRepo,
		tokenIssuer:       tokenIssuer,
		keyHashService:    keyHashService,
		otpVerifier:       otpVerifier,
		keeper:            keeper,
		maxFailedAttempts: maxFailedAttempts,
		lockoutDuration:   lockoutDuration,
	}
}

// Signup creates a new account from the client-prepared key material. The
// auth key is hashed before storage and the wrapped DEK blob is wrapped again
// at rest when a KMS keeper is configured.
func (u *accountUseCase) Signup(ctx context.Context, input *SignupInput) (*accountDomain.Account, error) {
	if err := input.KdfParams.Validate(); err != nil {
		return nil, err
	}

	authKeyHash, err := u.keyHashService.Hash(input.AuthKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash auth key")
	}

	wrappedDek, err := u.sealAtRest(ctx, input.WrappedDek.Ciphertext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &accountDomain.Account{
		ID:                  uuid.Must(uuid.NewV7()),
		Email:               input.Email,
		AuthKeyHash:         authKeyHash,
		KdfSalt:             input.KdfSalt,
		KdfParams:           input.KdfParams,
		WrappedDek:          wrappedDek,
		WrappedDekNonce:     input.WrappedDek.Nonce,
		WrappedDekAlgorithm: input.WrappedDek.Algorithm,
		KeyVersion:          1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := u.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Login verifies the auth key with a lockout on repeated failures and issues
// a bearer token on success. The returned account carries the wrapped DEK
// unwrapped from at-rest storage so the client can recover its key material.
func (u *accountUseCase) Login(ctx context.Context, email string, authKey []byte) (*LoginOutput, error) {
	account, err := u.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, accountDomain.ErrAccountNotFound) {
			return nil, accountDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now().UTC()
	if account.Locked(now) {
		return nil, accountDomain.ErrAccountLocked
	}

	if !u.keyHashService.Compare(authKey, account.AuthKeyHash) {
		if err := u.recordFailedLogin(ctx, account, now); err != nil {
			return nil, err
		}
		return nil, accountDomain.ErrInvalidCredentials
	}

	if account.FailedLoginAttempts > 0 || account.LockedUntil != nil {
		account.FailedLoginAttempts = 0
		account.LockedUntil = nil
		account.UpdatedAt = now
		if err := u.accountRepo.UpdateLoginState(ctx, account); err != nil {
			return nil, err
		}
	}

	plainToken, token, err := u.tokenIssuer.Issue(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	wrappedDek, err := u.openAtRest(ctx, account.WrappedDek)
	if err != nil {
		return nil, err
	}
	account.WrappedDek = wrappedDek

	return &LoginOutput{
		PlainToken: plainToken,
		Token:      token,
		Account:    account,
	}, nil
}

// GetKdfParams returns the salt and KDF parameters the client needs to derive
// its keys before it can authenticate.
func (u *accountUseCase) GetKdfParams(ctx context.Context, email string) (*KdfParamsOutput, error) {
	account, err := u.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return &KdfParamsOutput{
		KdfSalt:    account.KdfSalt,
		KdfParams:  account.KdfParams,
		KeyVersion: account.KeyVersion,
	}, nil
}

// RotateWrappedDek replaces the account's credential set inside a transaction
// guarded by the expected key version. The one-time code is verified first;
// nothing is written when verification fails or when a concurrent rotation
// already moved the key version.
func (u *accountUseCase) RotateWrappedDek(
	ctx context.Context,
	accountID uuid.UUID,
	input *RotationInput,
) (*accountDomain.Account, error) {
	if err := input.KdfParams.Validate(); err != nil {
		return nil, err
	}

	if err := u.otpVerifier.Verify(ctx, accountID, input.OTPCode); err != nil {
		return nil, err
	}

	authKeyHash, err := u.keyHashService.Hash(input.AuthKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash auth key")
	}

	wrappedDek, err := u.sealAtRest(ctx, input.WrappedDek.Ciphertext)
	if err != nil {
		return nil, err
	}

	var rotated *accountDomain.Account
	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		account, err := u.accountRepo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if account.KeyVersion != input.ExpectedKeyVersion {
			return accountDomain.ErrKeyVersionConflict
		}

		account.AuthKeyHash = authKeyHash
		account.KdfSalt = input.KdfSalt
		account.KdfParams = input.KdfParams
		account.WrappedDek = wrappedDek
		account.WrappedDekNonce = input.WrappedDek.Nonce
		account.WrappedDekAlgorithm = input.WrappedDek.Algorithm
		account.KeyVersion = input.ExpectedKeyVersion + 1
		account.UpdatedAt = time.Now().UTC()

		if err := u.accountRepo.UpdateWrappedDek(ctx, account, input.ExpectedKeyVersion); err != nil {
			return err
		}

		rotated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rotated, nil
}

// recordFailedLogin bumps the failure counter and locks the account once the
// threshold is reached.
func (u *accountUseCase) recordFailedLogin(
	ctx context.Context,
	account *accountDomain.Account,
	now time.Time,
) error {
	account.FailedLoginAttempts++
	if account.FailedLoginAttempts >= u.maxFailedAttempts {
		lockedUntil := now.Add(u.lockoutDuration)
		account.LockedUntil = &lockedUntil
	}
	account.UpdatedAt = now
	return u.accountRepo.UpdateLoginState(ctx, account)
}

// sealAtRest wraps the stored DEK blob with the configured keeper.
func (u *accountUseCase) sealAtRest(ctx context.Context, wrappedDek []byte) ([]byte, error) {
	if u.keeper == nil {
		return wrappedDek, nil
	}
	sealed, err := u.keeper.Encrypt(ctx, wrappedDek)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to seal wrapped dek")
	}
	return sealed, nil
}

// openAtRest unwraps the stored DEK blob with the configured keeper.
func (u *accountUseCase) openAtRest(ctx context.Context, sealed []byte) ([]byte, error) {
	if u.keeper == nil {
		return sealed, nil
	}
	wrappedDek, err := u.keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open wrapped dek")
	}
	return wrappedDek, nil
}
