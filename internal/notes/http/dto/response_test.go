package dto_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	notesDomain "github.com/allisson/notevault/internal/notes/domain"
	"github.com/allisson/notevault/internal/notes/http/dto"
)

func TestMapNoteToResponse(t *testing.T) {
	now := time.Now().UTC()
	note := &notesDomain.Note{
		ID:         uuid.Must(uuid.NewV7()),
		Ciphertext: []byte("blob"),
		Nonce:      []byte("nonce"),
		Version:    3,
		Status:     notesDomain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	response := dto.MapNoteToResponse(note)

	assert.Equal(t, note.ID.String(), response.ID)
	assert.Equal(t, base64.StdEncoding.EncodeToString(note.Ciphertext), response.Ciphertext)
	assert.Equal(t, base64.StdEncoding.EncodeToString(note.Nonce), response.Nonce)
	assert.Equal(t, uint(3), response.Version)
	assert.Equal(t, "active", response.Status)
}

func TestMapNoteToResponse_PurgedHasNoBlob(t *testing.T) {
	note := &notesDomain.Note{
		ID:      uuid.Must(uuid.NewV7()),
		Version: 4,
		Status:  notesDomain.StatusPurged,
	}

	response := dto.MapNoteToResponse(note)

	assert.Empty(t, response.Ciphertext)
	assert.Empty(t, response.Nonce)
	assert.Equal(t, "purged", response.Status)
}

func TestMapNotesToListResponse(t *testing.T) {
	now := time.Now().UTC()
	notes := []*notesDomain.Note{
		{
			ID:        uuid.Must(uuid.NewV7()),
			Version:   1,
			Status:    notesDomain.StatusActive,
			CreatedAt: now,
		},
		{
			ID:        uuid.Must(uuid.NewV7()),
			Version:   2,
			Status:    notesDomain.StatusDeleted,
			CreatedAt: now,
		},
	}

	response := dto.MapNotesToListResponse(notes)

	assert.Len(t, response.Data, 2)
	assert.Equal(t, notes[0].ID.String(), response.Data[0].ID)
	assert.Equal(t, notes[1].ID.String(), response.Data[1].ID)
}
