// Package repository implements data persistence for vault accounts.
// Repositories support both PostgreSQL and MySQL. The wrapped-DEK swap is
// guarded by the key version so concurrent passphrase rotations cannot
// interleave: the losing rotation fails cleanly and the account keeps a
// consistent credential set.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	"github.com/allisson/notevault/internal/database"
	apperrors "github.com/allisson/notevault/internal/errors"
)

// PostgreSQLAccountRepository implements Account persistence for PostgreSQL databases.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account into the PostgreSQL database.
// Returns ErrAccountAlreadyExists when the email is already registered.
func (p *PostgreSQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO accounts (id, email, auth_key_hash, kdf_salt, kdf_time, kdf_memory, kdf_threads,
				  kdf_salt_length, wrapped_dek, wrapped_dek_nonce, wrapped_dek_algorithm, key_version,
				  failed_login_attempts, locked_until, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
		account.Email,
		account.AuthKeyHash,
		account.KdfSalt,
		account.KdfParams.Time,
		account.KdfParams.Memory,
		account.KdfParams.Threads,
		account.KdfParams.SaltLength,
		account.WrappedDek,
		account.WrappedDekNonce,
		account.WrappedDekAlgorithm,
		account.KeyVersion,
		account.FailedLoginAttempts,
		account.LockedUntil,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Get retrieves an account by its id.
func (p *PostgreSQLAccountRepository) Get(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := accountSelectColumns + ` FROM accounts WHERE id = $1`

	return scanAccount(querier.QueryRowContext(ctx, query, accountID))
}

// GetByEmail retrieves an account by its email address.
func (p *PostgreSQLAccountRepository) GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := accountSelectColumns + ` FROM accounts WHERE email = $1`

	return scanAccount(querier.QueryRowContext(ctx, query, email))
}

// UpdateLoginState persists the failed-login counter and lockout timestamp.
func (p *PostgreSQLAccountRepository) UpdateLoginState(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE accounts
			  SET failed_login_attempts = $1, locked_until = $2, updated_at = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		account.FailedLoginAttempts,
		account.LockedUntil,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update login state")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return accountDomain.ErrAccountNotFound
	}
	return nil
}

// UpdateWrappedDek swaps the account's credential set guarded by the expected
// key version. The auth key hash, KDF salt and parameters, and the wrapped DEK
// are replaced together so a rotation either lands completely or not at all.
// Zero affected rows with an existing account means another rotation won the
// race; callers get ErrKeyVersionConflict.
func (p *PostgreSQLAccountRepository) UpdateWrappedDek(
	ctx context.Context,
	account *accountDomain.Account,
	expectedKeyVersion uint,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE accounts
			  SET auth_key_hash = $1, kdf_salt = $2, kdf_time = $3, kdf_memory = $4, kdf_threads = $5,
				  kdf_salt_length = $6, wrapped_dek = $7, wrapped_dek_nonce = $8, wrapped_dek_algorithm = $9,
				  key_version = $10, updated_at = $11
			  WHERE id = $12 AND key_version = $13`

	result, err := querier.ExecContext(
		ctx,
		query,
		account.AuthKeyHash,
		account.KdfSalt,
		account.KdfParams.Time,
		account.KdfParams.Memory,
		account.KdfParams.Threads,
		account.KdfParams.SaltLength,
		account.WrappedDek,
		account.WrappedDekNonce,
		account.WrappedDekAlgorithm,
		account.KeyVersion,
		account.UpdatedAt,
		account.ID,
		expectedKeyVersion,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update wrapped dek")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected > 0 {
		return nil
	}

	existsQuery := `SELECT 1 FROM accounts WHERE id = $1`

	var one int
	err = querier.QueryRowContext(ctx, existsQuery, account.ID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return accountDomain.ErrAccountNotFound
		}
		return apperrors.Wrap(err, "failed to check account existence")
	}

	return accountDomain.ErrKeyVersionConflict
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// NewPostgreSQLAccountRepository creates a new PostgreSQL Account repository instance.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}
