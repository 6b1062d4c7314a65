// Package http provides HTTP handlers for account management: signup, login,
// pre-login KDF parameter discovery, and passphrase rotation. All key
// material crossing these endpoints is already wrapped or derived client-side.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/notevault/internal/account/http/dto"
	accountUseCase "github.com/allisson/notevault/internal/account/usecase"
	authHTTP "github.com/allisson/notevault/internal/auth/http"
	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
	apperrors "github.com/allisson/notevault/internal/errors"
	"github.com/allisson/notevault/internal/httputil"
	customValidation "github.com/allisson/notevault/internal/validation"
)

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(useCase accountUseCase.AccountUseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: useCase,
		logger:         logger,
	}
}

// SignupHandler creates a new account from client-prepared key material.
// POST /v1/accounts
// Returns 201 Created with the account metadata.
func (h *AccountHandler) SignupHandler(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &accountUseCase.SignupInput{Email: req.Email}
	if err := decodeSignupKeyMaterial(&req, input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	account, err := h.accountUseCase.Signup(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAccountToResponse(account))
}

// LoginHandler verifies the client-derived auth key and issues a bearer token.
// POST /v1/auth/login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with the token and the wrapped key material.
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	authKey, err := base64.StdEncoding.DecodeString(req.AuthKey)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 auth key: %w", err), h.logger)
		return
	}

	output, err := h.accountUseCase.Login(c.Request.Context(), req.Email, authKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLoginToResponse(output))
}

// KdfParamsHandler returns the salt and KDF parameters for an email so the
// client can derive its keys before login.
// GET /v1/accounts/kdf-params?email=...
// No authentication required; the bundle contains no secret material.
func (h *AccountHandler) KdfParamsHandler(c *gin.Context) {
	email := c.Query("email")
	if err := customValidation.Email.Validate(email); err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid email: %w", err), h.logger)
		return
	}

	output, err := h.accountUseCase.GetKdfParams(c.Request.Context(), email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKdfParamsToResponse(output))
}

// RotateHandler swaps the account's credential set for a passphrase rotation.
// POST /v1/accounts/rotate - Requires authentication and a valid one-time code.
// Returns 200 OK with the updated account metadata.
func (h *AccountHandler) RotateHandler(c *gin.Context) {
	account, ok := authHTTP.GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.RotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &accountUseCase.RotationInput{
		ExpectedKeyVersion: req.ExpectedKeyVersion,
		OTPCode:            req.OTPCode,
	}
	if err := decodeRotationKeyMaterial(&req, input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	rotated, err := h.accountUseCase.RotateWrappedDek(c.Request.Context(), account.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(rotated))
}

// decodeSignupKeyMaterial decodes the base64 key material fields into the
// signup input.
func decodeSignupKeyMaterial(req *dto.SignupRequest, input *accountUseCase.SignupInput) error {
	var err error
	if input.AuthKey, err = base64.StdEncoding.DecodeString(req.AuthKey); err != nil {
		return fmt.Errorf("invalid base64 auth key: %w", err)
	}
	if input.KdfSalt, err = base64.StdEncoding.DecodeString(req.KdfSalt); err != nil {
		return fmt.Errorf("invalid base64 kdf salt: %w", err)
	}
	if input.WrappedDek.Ciphertext, err = base64.StdEncoding.DecodeString(req.WrappedDek); err != nil {
		return fmt.Errorf("invalid base64 wrapped dek: %w", err)
	}
	if input.WrappedDek.Nonce, err = base64.StdEncoding.DecodeString(req.WrappedDekNonce); err != nil {
		return fmt.Errorf("invalid base64 wrapped dek nonce: %w", err)
	}
	input.WrappedDek.Algorithm = cryptoDomain.Algorithm(req.WrappedDekAlgorithm)
	input.KdfParams = cryptoDomain.KdfParams{
		Time:       req.KdfTime,
		Memory:     req.KdfMemory,
		Threads:    req.KdfThreads,
		SaltLength: req.KdfSaltLength,
	}
	return nil
}

// decodeRotationKeyMaterial decodes the base64 key material fields into the
// rotation input.
func decodeRotationKeyMaterial(req *dto.RotateRequest, input *accountUseCase.RotationInput) error {
	var err error
	if input.AuthKey, err = base64.StdEncoding.DecodeString(req.AuthKey); err != nil {
		return fmt.Errorf("invalid base64 auth key: %w", err)
	}
	if input.KdfSalt, err = base64.StdEncoding.DecodeString(req.KdfSalt); err != nil {
		return fmt.Errorf("invalid base64 kdf salt: %w", err)
	}
	if input.WrappedDek.Ciphertext, err = base64.StdEncoding.DecodeString(req.WrappedDek); err != nil {
		return fmt.Errorf("invalid base64 wrapped dek: %w", err)
	}
	if input.WrappedDek.Nonce, err = base64.StdEncoding.DecodeString(req.WrappedDekNonce); err != nil {
		return fmt.Errorf("invalid base64 wrapped dek nonce: %w", err)
	}
	input.WrappedDek.Algorithm = cryptoDomain.Algorithm(req.WrappedDekAlgorithm)
	input.KdfParams = cryptoDomain.KdfParams{
		Time:       req.KdfTime,
		Memory:     req.KdfMemory,
		Threads:    req.KdfThreads,
		SaltLength: req.KdfSaltLength,
	}
	return nil
}
