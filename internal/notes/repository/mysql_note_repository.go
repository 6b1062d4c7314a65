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

// MySQLNoteRepository implements Note persistence for MySQL databases.
type MySQLNoteRepository struct {
	db *sql.DB
}

// Create inserts a new note into the MySQL database.
func (m *MySQLNoteRepository) Create(ctx context.Context, note *notesDomain.Note) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO notes (id, account_id, ciphertext, nonce, version, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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
		if isMySQLUniqueViolation(err) {
			return notesDomain.ErrNoteAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create note")
	}
	return nil
}

// Get retrieves a note by its id, scoped to the owning account.
func (m *MySQLNoteRepository) Get(
	ctx context.Context,
	accountID, noteID uuid.UUID,
) (*notesDomain.Note, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, account_id, ciphertext, nonce, version, status, created_at, updated_at
			  FROM notes
			  WHERE id = ? AND account_id = ?`

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
// time with pagination.
func (m *MySQLNoteRepository) List(
	ctx context.Context,
	accountID uuid.UUID,
	status notesDomain.Status,
	offset, limit int,
) ([]*notesDomain.Note, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, account_id, ciphertext, nonce, version, status, created_at, updated_at
			  FROM notes
			  WHERE account_id = ? AND status = ?
			  ORDER BY created_at ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, accountID, status, limit, offset)
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

// Update applies a mutation guarded by the expected version, disambiguating
// a missed update between a missing note and a version conflict.
func (m *MySQLNoteRepository) Update(
	ctx context.Context,
	note *notesDomain.Note,
	expectedVersion uint,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE notes
			  SET ciphertext = ?, nonce = ?, version = ?, status = ?, updated_at = ?
			  WHERE id = ? AND account_id = ? AND version = ?`

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

	existsQuery := `SELECT 1 FROM notes WHERE id = ? AND account_id = ?`

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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

// NewMySQLNoteRepository creates a new MySQL Note repository instance.
func NewMySQLNoteRepository(db *sql.DB) *MySQLNoteRepository {
	return &MySQLNoteRepository{db: db}
}
