// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	notesDomain "github.com/allisson/notevault/internal/notes/domain"
	customValidation "github.com/allisson/notevault/internal/validation"
)

// CreateNoteRequest contains the parameters for creating a note. The client
// supplies the note id because the ciphertext is bound to it during
// encryption; ciphertext and nonce are base64-encoded opaque blobs.
type CreateNoteRequest struct {
	ID         string `json:"id"`
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
}

// Validate checks if the create note request is valid.
func (r *CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Ciphertext, validation.Required, customValidation.Base64),
		validation.Field(&r.Nonce, validation.Required, customValidation.Base64),
	)
}

// UpdateNoteRequest contains the parameters for mutating a note: a content
// update keeps the status and carries new ciphertext, a lifecycle transition
// changes the status. ExpectedVersion is the version the client last saw and
// drives the optimistic concurrency check.
type UpdateNoteRequest struct {
	Ciphertext      string `json:"ciphertext"`
	Nonce           string `json:"nonce"`
	Status          string `json:"status"`
	ExpectedVersion uint   `json:"expected_version"`
}

// Validate checks if the update note request is valid. Ciphertext is only
// required for active-status writes: transitions to deleted or purged carry
// no content.
func (r *UpdateNoteRequest) Validate() error {
	status := notesDomain.Status(r.Status)

	rules := []*validation.FieldRules{
		validation.Field(&r.Status,
			validation.Required,
			validation.In(
				string(notesDomain.StatusActive),
				string(notesDomain.StatusDeleted),
				string(notesDomain.StatusPurged),
			),
		),
		validation.Field(&r.ExpectedVersion, validation.Required),
	}

	if status == notesDomain.StatusActive {
		rules = append(rules,
			validation.Field(&r.Ciphertext, validation.Required, customValidation.Base64),
			validation.Field(&r.Nonce, validation.Required, customValidation.Base64),
		)
	} else {
		rules = append(rules,
			validation.Field(&r.Ciphertext, customValidation.Base64),
			validation.Field(&r.Nonce, customValidation.Base64),
		)
	}

	return validation.ValidateStruct(r, rules...)
}
