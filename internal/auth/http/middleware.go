package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/gatewayconsole/internal/auth/service"
	authUseCase "github.com/allisson/gatewayconsole/internal/auth/usecase"
	apperrors "github.com/allisson/gatewayconsole/internal/errors"
	"github.com/allisson/gatewayconsole/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware resolves the Bearer token of the Authorization
// header into session claims.
//
// The token is hashed with tokenService.HashToken and resolved through
// SessionUseCase.Authenticate. On success the claims and the token hash are
// stored in the request context (see GetClaims and GetTokenHash).
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Unknown, expired or revoked token → 401 Unauthorized
//   - Inactive user → 403 Forbidden
//   - Other errors → 500 Internal Server Error
func AuthenticationMiddleware(
	sessionUseCase authUseCase.SessionUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		tokenHash := tokenService.HashToken(plainToken)

		claims, err := sessionUseCase.Authenticate(c.Request.Context(), tokenHash)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		ctx = WithTokenHash(ctx, tokenHash)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful", slog.String("user_id", claims.UserID.String()))

		c.Next()
	}
}
