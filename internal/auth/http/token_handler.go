// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/notevault/internal/auth/usecase"
	apperrors "github.com/allisson/notevault/internal/errors"
	"github.com/allisson/notevault/internal/httputil"
)

// TokenHandler handles HTTP requests for token operations.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// LogoutHandler revokes the token presented in the Authorization header.
// POST /v1/auth/logout - Requires authentication.
// Returns 204 No Content. Revoking an already revoked token is a no-op.
func (h *TokenHandler) LogoutHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), parts[1]); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
