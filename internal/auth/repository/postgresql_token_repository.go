// Package repository implements token persistence for PostgreSQL and MySQL.
// Only token hashes are stored; the plain token exists solely in the client's
// hands.
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

// PostgreSQLTokenRepository implements Token persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new token into the PostgreSQL database.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tokens (id, token_hash, account_id, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

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
func (p *PostgreSQLTokenRepository) GetByHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, account_id, expires_at, revoked_at, created_at
			  FROM tokens
			  WHERE token_hash = $1`

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
func (p *PostgreSQLTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// DeleteExpired removes tokens that expired before the cutoff. Returns the
// number of rows removed.
func (p *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM tokens WHERE expires_at < $1`

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

// NewPostgreSQLTokenRepository creates a new PostgreSQL Token repository instance.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}
