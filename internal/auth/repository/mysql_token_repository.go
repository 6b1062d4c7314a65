package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/notevault/internal/auth/domain"
	"github.com/allisson/notevault/internal/database"
	apperrors "github.com/allisson/notevault/internal/errors"
)

// MySQLTokenRepository implements Token persistence for MySQL.
type MySQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new token into the MySQL database.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tokens (id, token_hash, account_id, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.AccountID,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByHash retrieves a token by its SHA-256 hash.
func (m *MySQLTokenRepository) GetByHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, account_id, expires_at, revoked_at, created_at
			  FROM tokens
			  WHERE token_hash = ?`

	var token authDomain.Token
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.AccountID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by hash")
	}

	return &token, nil
}

// Revoke marks a token as revoked.
func (m *MySQLTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tokens SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// DeleteExpired removes tokens that expired before the cutoff. Returns the
// number of rows removed.
func (m *MySQLTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM tokens WHERE expires_at < ?`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return affected, nil
}

// NewMySQLTokenRepository creates a new MySQL Token repository instance.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
