// Package domain defines the core domain models and types for encrypted notes.
// Notes hold ciphertext only; plaintext exists client-side and is never part of
// the persisted record. Every mutation bumps the version number, which the
// storage layer uses for optimistic concurrency control.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a note.
type Status string

// Note lifecycle states.
const (
	// StatusActive means the note is visible and editable.
	StatusActive Status = "active"
	// StatusDeleted means the note is soft-deleted and recoverable.
	StatusDeleted Status = "deleted"
	// StatusPurged means the note's ciphertext has been discarded; terminal.
	StatusPurged Status = "purged"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDeleted, StatusPurged:
		return true
	}
	return false
}

// Transition represents a lifecycle action applied to a note.
type Transition string

// Note lifecycle transitions.
const (
	TransitionDelete  Transition = "delete"
	TransitionRestore Transition = "restore"
	TransitionPurge   Transition = "purge"
)

// Apply computes the status that results from applying tr to s. The noop
// return is true when the note is already in the target state, in which case
// callers skip the storage round-trip. Transitions on purged notes return
// ErrNoteNotFound because purged notes are indistinguishable from absent
// ones; purging an active note returns ErrInvalidTransition since a note
// must be soft-deleted first.
func (s Status) Apply(tr Transition) (next Status, noop bool, err error) {
	switch s {
	case StatusActive:
		switch tr {
		case TransitionDelete:
			return StatusDeleted, false, nil
		case TransitionRestore:
			return StatusActive, true, nil
		case TransitionPurge:
			return StatusActive, false, ErrInvalidTransition
		}
	case StatusDeleted:
		switch tr {
		case TransitionDelete:
			return StatusDeleted, true, nil
		case TransitionRestore:
			return StatusActive, false, nil
		case TransitionPurge:
			return StatusPurged, false, nil
		}
	case StatusPurged:
		return StatusPurged, false, ErrNoteNotFound
	}
	return s, false, ErrInvalidTransition
}

// Note represents an encrypted note with versioning and lifecycle metadata.
type Note struct {
	// ID is the unique identifier for this note.
	ID uuid.UUID
	// AccountID identifies the owning account.
	AccountID uuid.UUID
	// Ciphertext contains the encrypted note content; nil after a purge.
	Ciphertext []byte
	// Nonce is the random value used during AEAD encryption; nil after a purge.
	Nonce []byte
	// Plaintext holds the decrypted note content in memory only; must be zeroed after use.
	Plaintext []byte `json:"-"`
	// Version is the monotonically increasing change counter used for
	// optimistic concurrency. Every mutation, including status-only
	// transitions, increments it.
	Version uint
	// Status is the current lifecycle state.
	Status Status
	// CreatedAt is the UTC timestamp when the note was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last mutation.
	UpdatedAt time.Time
}
