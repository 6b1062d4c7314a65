package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/notevault/internal/auth/usecase"
	apperrors "github.com/allisson/notevault/internal/errors"
	"github.com/allisson/notevault/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer token in the
// Authorization header and stores the resolved account in the request
// context for downstream handlers (via GetAccount).
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Unknown/expired/revoked token → 401 Unauthorized
//   - Other errors → 500 Internal Server Error
func AuthenticationMiddleware(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		account, err := tokenUseCase.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithAccount(c.Request.Context(), account))
		c.Next()
	}
}
