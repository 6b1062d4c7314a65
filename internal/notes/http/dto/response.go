package dto

import (
	"encoding/base64"
	"time"

	notesDomain "github.com/allisson/notevault/internal/notes/domain"
)

// NoteResponse represents a note in API responses. Ciphertext and nonce are
// base64-encoded; both are empty for purged notes.
type NoteResponse struct {
	ID         string    `json:"id"`
	Ciphertext string    `json:"ciphertext,omitempty"`
	Nonce      string    `json:"nonce,omitempty"`
	Version    uint      `json:"version"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MapNoteToResponse converts a domain note to an API response.
func MapNoteToResponse(note *notesDomain.Note) NoteResponse {
	response := NoteResponse{
		ID:        note.ID.String(),
		Version:   note.Version,
		Status:    string(note.Status),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	if len(note.Ciphertext) > 0 {
		response.Ciphertext = base64.StdEncoding.EncodeToString(note.Ciphertext)
	}
	if len(note.Nonce) > 0 {
		response.Nonce = base64.StdEncoding.EncodeToString(note.Nonce)
	}
	return response
}

// ListNotesResponse represents a paginated list of notes in API responses.
type ListNotesResponse struct {
	Data []NoteResponse `json:"data"`
}

// MapNotesToListResponse converts a slice of domain notes to a list response.
func MapNotesToListResponse(notes []*notesDomain.Note) ListNotesResponse {
	data := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		data = append(data, MapNoteToResponse(note))
	}

	return ListNotesResponse{
		Data: data,
	}
}
