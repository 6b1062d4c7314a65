// Package http provides HTTP handlers for the note sync API. The server side
// of the vault is deliberately blind: handlers move base64-encoded ciphertext
// in and out of storage and never see a key or a plaintext note.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/notevault/internal/auth/http"
	apperrors "github.com/allisson/notevault/internal/errors"
	"github.com/allisson/notevault/internal/httputil"
	notesDomain "github.com/allisson/notevault/internal/notes/domain"
	"github.com/allisson/notevault/internal/notes/http/dto"
	notesUseCase "github.com/allisson/notevault/internal/notes/usecase"
	customValidation "github.com/allisson/notevault/internal/validation"
)

// NoteHandler handles HTTP requests for the note sync API.
type NoteHandler struct {
	noteSyncUseCase notesUseCase.NoteSyncUseCase
	logger          *slog.Logger
}

// NewNoteHandler creates a new note handler with required dependencies.
func NewNoteHandler(noteSyncUseCase notesUseCase.NoteSyncUseCase, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteSyncUseCase: noteSyncUseCase,
		logger:          logger,
	}
}

// CreateHandler stores a new encrypted note.
// POST /v1/notes
// Returns 201 Created with the stored note.
func (h *NoteHandler) CreateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	noteID, err := uuid.Parse(req.ID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid note id: %w", err), h.logger)
		return
	}

	ciphertext, err := base64.StdEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 ciphertext: %w", err), h.logger)
		return
	}

	nonce, err := base64.StdEncoding.DecodeString(req.Nonce)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 nonce: %w", err), h.logger)
		return
	}

	note, err := h.noteSyncUseCase.Create(c.Request.Context(), &notesDomain.Note{
		ID:         noteID,
		AccountID:  account.ID,
		Ciphertext: ciphertext,
		Nonce:      nonce,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNoteToResponse(note))
}

// GetHandler retrieves an encrypted note by id.
// GET /v1/notes/:id
// Returns 200 OK with the ciphertext blob; decryption happens client-side.
func (h *NoteHandler) GetHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid note id: %w", err), h.logger)
		return
	}

	note, err := h.noteSyncUseCase.Get(c.Request.Context(), account.ID, noteID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNoteToResponse(note))
}

// ListHandler retrieves notes filtered by status with pagination.
// GET /v1/notes?status=active&offset=0&limit=50
// Returns 200 OK with note metadata and ciphertext blobs.
func (h *NoteHandler) ListHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	status := notesDomain.Status(c.DefaultQuery("status", string(notesDomain.StatusActive)))
	if !status.Valid() {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid status parameter: must be active, deleted or purged"),
			h.logger,
		)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	notes, err := h.noteSyncUseCase.List(c.Request.Context(), account.ID, status, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNotesToListResponse(notes))
}

// UpdateHandler applies a content update or a lifecycle transition, guarded
// by the expected version.
// PUT /v1/notes/:id
// Returns 200 OK with the updated note, 409 Conflict on a stale version.
func (h *NoteHandler) UpdateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid note id: %w", err), h.logger)
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ciphertext, err := base64.StdEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 ciphertext: %w", err), h.logger)
		return
	}

	nonce, err := base64.StdEncoding.DecodeString(req.Nonce)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 nonce: %w", err), h.logger)
		return
	}

	note, err := h.noteSyncUseCase.Update(c.Request.Context(), &notesDomain.Note{
		ID:         noteID,
		AccountID:  account.ID,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Status:     notesDomain.Status(req.Status),
	}, req.ExpectedVersion)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNoteToResponse(note))
}
