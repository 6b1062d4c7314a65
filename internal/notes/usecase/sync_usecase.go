package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/notevault/internal/database"
	notesDomain "github.com/allisson/notevault/internal/notes/domain"
)

// noteSyncUseCase implements the NoteSyncUseCase interface backing the sync
// API. Ciphertext is opaque here: the server stores and versions blobs but
// never holds a key that could open them.
type noteSyncUseCase struct {
	txManager database.TxManager
	noteRepo  NoteRepository
}

// Create stores a new note. The client supplies the note id because the
// ciphertext is cryptographically bound to it; the server assigns everything
// else.
func (n *noteSyncUseCase) Create(
	ctx context.Context,
	note *notesDomain.Note,
) (*notesDomain.Note, error) {
	now := time.Now().UTC()
	stored := &notesDomain.Note{
		ID:         note.ID,
		AccountID:  note.AccountID,
		Ciphertext: note.Ciphertext,
		Nonce:      note.Nonce,
		Version:    1,
		Status:     notesDomain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := n.noteRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	return stored, nil
}

// Get retrieves a note for an account.
func (n *noteSyncUseCase) Get(
	ctx context.Context,
	accountID, noteID uuid.UUID,
) (*notesDomain.Note, error) {
	return n.noteRepo.Get(ctx, accountID, noteID)
}

// List retrieves notes for an account filtered by status.
func (n *noteSyncUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
	status notesDomain.Status,
	offset, limit int,
) ([]*notesDomain.Note, error) {
	return n.noteRepo.List(ctx, accountID, status, offset, limit)
}

// Update validates the requested status change against the stored note and
// applies the mutation with optimistic concurrency control. The server
// assigns the new version number itself; the repository's version guard makes
// the read-validate-write sequence safe against concurrent writers, since any
// interleaved mutation moves the version and fails the guard.
func (n *noteSyncUseCase) Update(
	ctx context.Context,
	note *notesDomain.Note,
	expectedVersion uint,
) (*notesDomain.Note, error) {
	var updated *notesDomain.Note
	err := n.txManager.WithTx(ctx, func(txCtx context.Context) error {
		stored, err := n.noteRepo.Get(txCtx, note.AccountID, note.ID)
		if err != nil {
			return err
		}

		if err := validateStatusChange(stored.Status, note.Status); err != nil {
			return err
		}

		updated = &notesDomain.Note{
			ID:         stored.ID,
			AccountID:  stored.AccountID,
			Ciphertext: stored.Ciphertext,
			Nonce:      stored.Nonce,
			Version:    expectedVersion + 1,
			Status:     note.Status,
			CreatedAt:  stored.CreatedAt,
			UpdatedAt:  time.Now().UTC(),
		}
		if len(note.Ciphertext) > 0 {
			// Content update; a bare status transition keeps the stored blob
			// so a deleted note stays restorable.
			updated.Ciphertext = note.Ciphertext
			updated.Nonce = note.Nonce
		}
		if note.Status == notesDomain.StatusPurged {
			// Purge discards the blob even if the client sent one.
			updated.Ciphertext = nil
			updated.Nonce = nil
		}

		return n.noteRepo.Update(txCtx, updated, expectedVersion)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// validateStatusChange checks that the stored status can move to the
// requested one. Same-status writes are content updates and are legal for
// active and deleted notes. Purged notes are terminal and reported as absent.
func validateStatusChange(from, to notesDomain.Status) error {
	if !to.Valid() {
		return notesDomain.ErrInvalidTransition
	}

	switch from {
	case notesDomain.StatusActive:
		switch to {
		case notesDomain.StatusActive, notesDomain.StatusDeleted:
			return nil
		}
	case notesDomain.StatusDeleted:
		switch to {
		case notesDomain.StatusActive, notesDomain.StatusDeleted, notesDomain.StatusPurged:
			return nil
		}
	case notesDomain.StatusPurged:
		return notesDomain.ErrNoteNotFound
	}

	return notesDomain.ErrInvalidTransition
}

// NewNoteSyncUseCase creates a new server-side note sync use case instance.
func NewNoteSyncUseCase(txManager database.TxManager, noteRepo NoteRepository) NoteSyncUseCase {
	return &noteSyncUseCase{
		txManager: txManager,
		noteRepo:  noteRepo,
	}
}
