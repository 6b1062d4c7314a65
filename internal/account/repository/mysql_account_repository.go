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

// MySQLAccountRepository implements Account persistence for MySQL databases.
type MySQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account into the MySQL database.
// Returns ErrAccountAlreadyExists when the email is already registered.
func (m *MySQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO accounts (id, email, auth_key_hash, kdf_salt, kdf_time, kdf_memory, kdf_threads,
				  kdf_salt_length, wrapped_dek, wrapped_dek_nonce, wrapped_dek_algorithm, key_version,
				  failed_login_attempts, locked_until, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
		if isMySQLUniqueViolation(err) {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Get retrieves an account by its id.
func (m *MySQLAccountRepository) Get(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	query := accountSelectColumns + ` FROM accounts WHERE id = ?`

	return scanAccount(querier.QueryRowContext(ctx, query, accountID))
}

// GetByEmail retrieves an account by its email address.
func (m *MySQLAccountRepository) GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	query := accountSelectColumns + ` FROM accounts WHERE email = ?`

	return scanAccount(querier.QueryRowContext(ctx, query, email))
}

// UpdateLoginState persists the failed-login counter and lockout timestamp.
func (m *MySQLAccountRepository) UpdateLoginState(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE accounts
			  SET failed_login_attempts = ?, locked_until = ?, updated_at = ?
			  WHERE id = ?`

	_, err := querier.ExecContext(
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
	return nil
}

// UpdateWrappedDek swaps the account's credential set guarded by the expected
// key version. Zero affected rows with an existing account means another
// rotation won the race; callers get ErrKeyVersionConflict. The rotation
// always bumps key_version, so MySQL's zero-rows-when-unchanged behavior
// cannot produce a false conflict.
func (m *MySQLAccountRepository) UpdateWrappedDek(
	ctx context.Context,
	account *accountDomain.Account,
	expectedKeyVersion uint,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE accounts
			  SET auth_key_hash = ?, kdf_salt = ?, kdf_time = ?, kdf_memory = ?, kdf_threads = ?,
				  kdf_salt_length = ?, wrapped_dek = ?, wrapped_dek_nonce = ?, wrapped_dek_algorithm = ?,
				  key_version = ?, updated_at = ?
			  WHERE id = ? AND key_version = ?`

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

	existsQuery := `SELECT 1 FROM accounts WHERE id = ?`

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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

// NewMySQLAccountRepository creates a new MySQL Account repository instance.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}
