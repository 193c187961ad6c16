package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	"github.com/allisson/gatewayconsole/internal/auth/http/dto"
	authUseCase "github.com/allisson/gatewayconsole/internal/auth/usecase"
	apperrors "github.com/allisson/gatewayconsole/internal/errors"
	"github.com/allisson/gatewayconsole/internal/httputil"
	customValidation "github.com/allisson/gatewayconsole/internal/validation"
)

// SessionHandler handles login, logout and the current session.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler exchanges credentials for a bearer token.
// POST /v1/sessions - No authentication required.
// Returns 201 Created with the token and its expiration.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessionUseCase.Login(c.Request.Context(), &authDomain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.LoginResponse{
		Token:     output.PlainToken,
		ExpiresAt: output.ExpiresAt,
	})
}

// LogoutHandler revokes the token of the current request.
// DELETE /v1/sessions - Requires authentication. Returns 204 No Content.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	tokenHash, ok := GetTokenHash(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), tokenHash); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// MeHandler returns the claims of the current session.
// GET /v1/sessions/me - Requires authentication.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClaimsToResponse(claims))
}
