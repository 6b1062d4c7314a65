package domain

import (
	"github.com/allisson/notevault/internal/errors"
)

// Note-specific error definitions.
var (
	// ErrNoteNotFound indicates the note does not exist or has been purged.
	ErrNoteNotFound = errors.Wrap(errors.ErrNotFound, "note not found")
	// ErrNoteAlreadyExists indicates a note with the same id already exists.
	// Note ids are client-supplied, so a duplicate is a client error.
	ErrNoteAlreadyExists = errors.Wrap(errors.ErrConflict, "note already exists")
	// ErrNoteConflict indicates the note was modified concurrently; the
	// caller holds a stale version and must re-fetch before retrying.
	ErrNoteConflict = errors.Wrap(errors.ErrConflict, "note version conflict")
	// ErrInvalidTransition indicates the requested lifecycle transition is
	// not allowed from the note's current status.
	ErrInvalidTransition = errors.Wrap(errors.ErrInvalidInput, "invalid note status transition")
)
