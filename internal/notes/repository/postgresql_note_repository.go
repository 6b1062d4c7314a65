// Package repository implements data persistence for encrypted notes.
// Repositories support both PostgreSQL and MySQL with optimistic concurrency
// control: every update is guarded by the expected version, so concurrent
// writers lose deterministically instead of overwriting each other.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/notevault/internal/database"
	apperrors "github.com/allisson/notevault/internal/errors"
	notesDomain "github.com/allisson/notevault/internal/notes/domain"
)

// PostgreSQLNoteRepository implements Note persistence for PostgreSQL databases.
type PostgreSQLNoteRepository struct {
	db *sql.DB
}

// Create inserts a new note into the PostgreSQL database.
func (p *PostgreSQLNoteRepository) Create(ctx context.Context, note *notesDomain.Note) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO notes (id, account_id, ciphertext, nonce, version, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		note.ID,
		note.AccountID,
		note.Ciphertext,
		note.Nonce,
		note.Version,
		note.Status,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return notesDomain.ErrNoteAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create note")
	}
	return nil
}

// Get retrieves a note by its id, scoped to the owning account.
func (p *PostgreSQLNoteRepository) Get(
	ctx context.Context,
	accountID, noteID uuid.UUID,
) (*notesDomain.Note, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, ciphertext, nonce, version, status, created_at, updated_at
			  FROM notes
			  WHERE id = $1 AND account_id = $2`

	var note notesDomain.Note
	err := querier.QueryRowContext(ctx, query, noteID, accountID).Scan(
		&note.ID,
		&note.AccountID,
		&note.Ciphertext,
		&note.Nonce,
		&note.Version,
		&note.Status,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notesDomain.ErrNoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get note")
	}

	return &note, nil
}

// List retrieves notes for an account filtered by status, ordered by creation
// time with pagination. Ciphertext columns are included: callers that only
// need metadata pay a small cost, but the sync client needs the blobs.
func (p *PostgreSQLNoteRepository) List(
	ctx context.Context,
	accountID uuid.UUID,
	status notesDomain.Status,
	offset, limit int,
) ([]*notesDomain.Note, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, ciphertext, nonce, version, status, created_at, updated_at
			  FROM notes
			  WHERE account_id = $1 AND status = $2
			  ORDER BY created_at ASC
			  OFFSET $3 LIMIT $4`

	rows, err := querier.QueryContext(ctx, query, accountID, status, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list notes")
	}
	defer func() { _ = rows.Close() }()

	var notes []*notesDomain.Note
	for rows.Next() {
		var note notesDomain.Note
		err := rows.Scan(
			&note.ID,
			&note.AccountID,
			&note.Ciphertext,
			&note.Nonce,
			&note.Version,
			&note.Status,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan note")
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate notes")
	}

	return notes, nil
}

// Update applies a mutation guarded by the expected version. Zero affected
// rows means either the note does not exist for this account or the version
// moved; a follow-up existence check disambiguates so callers get
// ErrNoteConflict only when a retry with a fresh version can succeed.
func (p *PostgreSQLNoteRepository) Update(
	ctx context.Context,
	note *notesDomain.Note,
	expectedVersion uint,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE notes
			  SET ciphertext = $1, nonce = $2, version = $3, status = $4, updated_at = $5
			  WHERE id = $6 AND account_id = $7 AND version = $8`

	result, err := querier.ExecContext(
		ctx,
		query,
		note.Ciphertext,
		note.Nonce,
		note.Version,
		note.Status,
		note.UpdatedAt,
		note.ID,
		note.AccountID,
		expectedVersion,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update note")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected > 0 {
		return nil
	}

	existsQuery := `SELECT 1 FROM notes WHERE id = $1 AND account_id = $2`

	var one int
	err = querier.QueryRowContext(ctx, existsQuery, note.ID, note.AccountID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return notesDomain.ErrNoteNotFound
		}
		return apperrors.Wrap(err, "failed to check note existence")
	}

	return notesDomain.ErrNoteConflict
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// NewPostgreSQLNoteRepository creates a new PostgreSQL Note repository instance.
func NewPostgreSQLNoteRepository(db *sql.DB) *PostgreSQLNoteRepository {
	return &PostgreSQLNoteRepository{db: db}
}
