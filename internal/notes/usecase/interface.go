// Package usecase defines the interfaces and implementations for note
// management use cases. Use cases orchestrate the session's key material, the
// AEAD ciphers, and the sync store to implement the note lifecycle: all
// encryption and decryption happens here, so the store only ever sees
// ciphertext.
package usecase

import (
	"context"

	"github.com/google/uuid"

	notesDomain "github.com/allisson/notevault/internal/notes/domain"
)

// SyncStore defines the interface for the remote note store. Implementations
// never receive plaintext: notes cross this boundary encrypted. Update applies
// optimistic concurrency control and returns notesDomain.ErrNoteConflict when
// the stored version no longer matches expectedVersion.
type SyncStore interface {
	Create(ctx context.Context, note *notesDomain.Note) error
	Get(ctx context.Context, noteID uuid.UUID) (*notesDomain.Note, error)
	List(ctx context.Context, status notesDomain.Status, offset, limit int) ([]*notesDomain.Note, error)
	Update(ctx context.Context, note *notesDomain.Note, expectedVersion uint) error
}

// NoteRepository defines the interface for note persistence operations. All
// reads are scoped to an account: a note id from another account behaves as
// absent. Update applies the version check and the mutation atomically.
type NoteRepository interface {
	Create(ctx context.Context, note *notesDomain.Note) error
	Get(ctx context.Context, accountID, noteID uuid.UUID) (*notesDomain.Note, error)
	List(ctx context.Context, accountID uuid.UUID, status notesDomain.Status, offset, limit int) ([]*notesDomain.Note, error)
	Update(ctx context.Context, note *notesDomain.Note, expectedVersion uint) error
}

// NoteSyncUseCase defines the server-side interface backing the sync API. It
// stores ciphertext blobs without ever decrypting them, assigns authoritative
// version numbers, and validates lifecycle transitions against the stored
// status.
type NoteSyncUseCase interface {
	Create(ctx context.Context, note *notesDomain.Note) (*notesDomain.Note, error)
	Get(ctx context.Context, accountID, noteID uuid.UUID) (*notesDomain.Note, error)
	List(ctx context.Context, accountID uuid.UUID, status notesDomain.Status, offset, limit int) ([]*notesDomain.Note, error)
	Update(ctx context.Context, note *notesDomain.Note, expectedVersion uint) (*notesDomain.Note, error)
}

// NoteUseCase defines the interface for note lifecycle business logic.
type NoteUseCase interface {
	// Create encrypts plaintext and stores a new active note at version 1.
	//
	// Security Note: The returned Note contains plaintext data in the Plaintext field.
	// Callers MUST zero this data after use by calling cryptoDomain.Zero(note.Plaintext).
	Create(ctx context.Context, plaintext []byte) (*notesDomain.Note, error)
	// Get retrieves and decrypts a note, serving from the plaintext cache when
	// a current entry exists.
	//
	// Security Note: The returned Note contains plaintext data in the Plaintext field.
	// Callers MUST zero this data after use by calling cryptoDomain.Zero(note.Plaintext).
	Get(ctx context.Context, noteID uuid.UUID) (*notesDomain.Note, error)
	// Update re-encrypts the note with new plaintext, guarded by expectedVersion.
	Update(ctx context.Context, noteID uuid.UUID, plaintext []byte, expectedVersion uint) (*notesDomain.Note, error)
	// Delete soft-deletes a note; deleting an already-deleted note is a no-op.
	Delete(ctx context.Context, noteID uuid.UUID, expectedVersion uint) (*notesDomain.Note, error)
	// Restore returns a soft-deleted note to active; restoring an active note is a no-op.
	Restore(ctx context.Context, noteID uuid.UUID, expectedVersion uint) (*notesDomain.Note, error)
	// Purge discards a soft-deleted note's ciphertext permanently. Purging an
	// active note fails with notesDomain.ErrInvalidTransition.
	Purge(ctx context.Context, noteID uuid.UUID, expectedVersion uint) (*notesDomain.Note, error)
	// List returns note metadata without decrypting, filtered by status,
	// ordered by creation time with pagination.
	List(ctx context.Context, status notesDomain.Status, offset, limit int) ([]*notesDomain.Note, error)
}
