// Package usecase implements business logic orchestration for note management.
// This package coordinates the session, cryptographic services, and the sync
// store to implement the note lifecycle with client-side encryption and
// optimistic concurrency control.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
	cryptoService "github.com/allisson/notevault/internal/crypto/service"
	notesDomain "github.com/allisson/notevault/internal/notes/domain"
	"github.com/allisson/notevault/internal/session"
)

// noteUseCase implements the NoteUseCase interface for managing notes.
type noteUseCase struct {
	session     *session.Session
	store       SyncStore
	aeadManager cryptoService.AEADManager
	algorithm   cryptoDomain.Algorithm
}

// Create encrypts plaintext and stores a new active note at version 1.
func (n *noteUseCase) Create(ctx context.Context, plaintext []byte) (*notesDomain.Note, error) {
	noteID := uuid.Must(uuid.NewV7())

	// Capture the generation before any work so a logout during the network
	// round-trip invalidates the cache write below.
	generation := n.session.Generation()

	ciphertext, nonce, err := n.encrypt(noteID, plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &notesDomain.Note{
		ID:         noteID,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Version:    1,
		Status:     notesDomain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := n.store.Create(ctx, note); err != nil {
		return nil, err
	}

	n.session.StorePlaintext(noteID, generation, note.Version, plaintext)
	note.Plaintext = plaintext

	return note, nil
}

// Get retrieves and decrypts a note, serving from the plaintext cache when a
// current entry exists.
func (n *noteUseCase) Get(ctx context.Context, noteID uuid.UUID) (*notesDomain.Note, error) {
	note, err := n.store.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.Status == notesDomain.StatusPurged {
		return nil, notesDomain.ErrNoteNotFound
	}

	// A cache hit must match the fetched version: a note updated from another
	// device invalidates the local entry.
	cached, ok, err := n.session.CachedPlaintext(noteID, note.Version)
	if err != nil {
		return nil, err
	}
	if ok {
		note.Plaintext = cached
		return note, nil
	}

	generation := n.session.Generation()

	plaintext, err := n.decrypt(noteID, note.Ciphertext, note.Nonce)
	if err != nil {
		return nil, err
	}

	n.session.StorePlaintext(noteID, generation, note.Version, plaintext)
	note.Plaintext = plaintext

	return note, nil
}

// Update re-encrypts the note with new plaintext, guarded by expectedVersion.
// Content updates are legal on active and deleted notes alike; the status is
// preserved, so editing a deleted note does not resurrect it.
func (n *noteUseCase) Update(
	ctx context.Context,
	noteID uuid.UUID,
	plaintext []byte,
	expectedVersion uint,
) (*notesDomain.Note, error) {
	note, err := n.store.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if note.Status == notesDomain.StatusPurged {
		return nil, notesDomain.ErrNoteNotFound
	}

	generation := n.session.Generation()

	ciphertext, nonce, err := n.encrypt(noteID, plaintext)
	if err != nil {
		return nil, err
	}

	note.Ciphertext = ciphertext
	note.Nonce = nonce
	note.Version = expectedVersion + 1
	note.UpdatedAt = time.Now().UTC()

	if err := n.store.Update(ctx, note, expectedVersion); err != nil {
		return nil, err
	}

	n.session.StorePlaintext(noteID, generation, note.Version, plaintext)
	note.Plaintext = plaintext

	return note, nil
}

// Delete soft-deletes a note; deleting an already-deleted note is a no-op.
func (n *noteUseCase) Delete(
	ctx context.Context,
	noteID uuid.UUID,
	expectedVersion uint,
) (*notesDomain.Note, error) {
	return n.transition(ctx, noteID, expectedVersion, notesDomain.TransitionDelete)
}

// Restore returns a soft-deleted note to active; restoring an active note is a no-op.
func (n *noteUseCase) Restore(
	ctx context.Context,
	noteID uuid.UUID,
	expectedVersion uint,
) (*notesDomain.Note, error) {
	return n.transition(ctx, noteID, expectedVersion, notesDomain.TransitionRestore)
}

// Purge discards a soft-deleted note's ciphertext permanently.
func (n *noteUseCase) Purge(
	ctx context.Context,
	noteID uuid.UUID,
	expectedVersion uint,
) (*notesDomain.Note, error) {
	return n.transition(ctx, noteID, expectedVersion, notesDomain.TransitionPurge)
}

// List returns note metadata without decrypting.
func (n *noteUseCase) List(
	ctx context.Context,
	status notesDomain.Status,
	offset, limit int,
) ([]*notesDomain.Note, error) {
	return n.store.List(ctx, status, offset, limit)
}

// transition applies a lifecycle transition with optimistic concurrency
// control. Idempotent transitions (delete on deleted, restore on active)
// return the note unchanged without a version bump or a storage write.
func (n *noteUseCase) transition(
	ctx context.Context,
	noteID uuid.UUID,
	expectedVersion uint,
	tr notesDomain.Transition,
) (*notesDomain.Note, error) {
	note, err := n.store.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}

	next, noop, err := note.Status.Apply(tr)
	if err != nil {
		return nil, err
	}
	if noop {
		return note, nil
	}

	note.Status = next
	note.Version = expectedVersion + 1
	note.UpdatedAt = time.Now().UTC()
	if next == notesDomain.StatusPurged {
		// Ciphertext is discarded, not retained: a purged note is gone even
		// if the row lingers as a tombstone.
		note.Ciphertext = nil
		note.Nonce = nil
	}

	if err := n.store.Update(ctx, note, expectedVersion); err != nil {
		return nil, err
	}

	// Deleted and purged notes must not serve cached plaintext.
	if next != notesDomain.StatusActive {
		n.session.Invalidate(noteID)
	}

	return note, nil
}

// encrypt seals plaintext under the session DEK, binding the ciphertext to
// the note id via AAD so ciphertexts cannot be swapped between notes.
func (n *noteUseCase) encrypt(noteID uuid.UUID, plaintext []byte) (ciphertext, nonce []byte, err error) {
	err = n.session.WithDEK(func(dek []byte) error {
		cipher, err := n.aeadManager.CreateCipher(dek, n.algorithm)
		if err != nil {
			return err
		}

		ciphertext, nonce, err = cipher.Encrypt(plaintext, noteID[:])
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return ciphertext, nonce, nil
}

// decrypt opens ciphertext under the session DEK with the note id as AAD.
func (n *noteUseCase) decrypt(noteID uuid.UUID, ciphertext, nonce []byte) (plaintext []byte, err error) {
	err = n.session.WithDEK(func(dek []byte) error {
		cipher, err := n.aeadManager.CreateCipher(dek, n.algorithm)
		if err != nil {
			return err
		}

		plaintext, err = cipher.Decrypt(ciphertext, nonce, noteID[:])
		return err
	})
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}

// NewNoteUseCase creates a new note use case instance with the provided dependencies.
func NewNoteUseCase(
	sess *session.Session,
	store SyncStore,
	aeadManager cryptoService.AEADManager,
	algorithm cryptoDomain.Algorithm,
) NoteUseCase {
	return &noteUseCase{
		session:     sess,
		store:       store,
		aeadManager: aeadManager,
		algorithm:   algorithm,
	}
}
