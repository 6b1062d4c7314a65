package repository

import (
	"database/sql"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
	apperrors "github.com/allisson/notevault/internal/errors"
)

// accountSelectColumns is the shared column list for account queries; the
// scan order in scanAccount must match it.
const accountSelectColumns = `SELECT id, email, auth_key_hash, kdf_salt, kdf_time, kdf_memory, kdf_threads,
				  kdf_salt_length, wrapped_dek, wrapped_dek_nonce, wrapped_dek_algorithm, key_version,
				  failed_login_attempts, locked_until, created_at, updated_at`

// scanAccount scans a single account row, mapping sql.ErrNoRows to
// ErrAccountNotFound.
func scanAccount(row *sql.Row) (*accountDomain.Account, error) {
	var account accountDomain.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.AuthKeyHash,
		&account.KdfSalt,
		&account.KdfParams.Time,
		&account.KdfParams.Memory,
		&account.KdfParams.Threads,
		&account.KdfParams.SaltLength,
		&account.WrappedDek,
		&account.WrappedDekNonce,
		&account.WrappedDekAlgorithm,
		&account.KeyVersion,
		&account.FailedLoginAttempts,
		&account.LockedUntil,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}
	return &account, nil
}
