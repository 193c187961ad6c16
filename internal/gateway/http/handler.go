// Package http provides the HTTP handlers of the gateway service.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/gatewayconsole/internal/auth/http"
	"github.com/allisson/gatewayconsole/internal/authz"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	"github.com/allisson/gatewayconsole/internal/gateway/http/dto"
	gatewayUseCase "github.com/allisson/gatewayconsole/internal/gateway/usecase"
	"github.com/allisson/gatewayconsole/internal/httputil"
	customValidation "github.com/allisson/gatewayconsole/internal/validation"
)

// GatewayHandler handles HTTP requests for gateway operations.
type GatewayHandler struct {
	gatewayUseCase gatewayUseCase.GatewayUseCase
	logger         *slog.Logger
}

// NewGatewayHandler creates a new gateway handler.
func NewGatewayHandler(gatewayUseCase gatewayUseCase.GatewayUseCase, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		gatewayUseCase: gatewayUseCase,
		logger:         logger,
	}
}

// SessionFromContext returns the claims stored by the authentication
// middleware, or a nil Session for anonymous requests.
func SessionFromContext(c *gin.Context) authz.Session {
	claims, ok := authHTTP.GetClaims(c.Request.Context())
	if !ok {
		return nil
	}
	return claims
}

// CreateHandler registers a new gateway.
// POST /v1/gateways - body {"gateway": {...}}. Returns 201 Created.
func (h *GatewayHandler) CreateHandler(c *gin.Context) {
	gateway, ok := h.bindGateway(c)
	if !ok {
		return
	}

	created, err := h.gatewayUseCase.Create(c.Request.Context(), SessionFromContext(c), gateway)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapGatewayToResponse(created))
}

// GetHandler returns one gateway.
// GET /v1/gateways/:gateway_id
func (h *GatewayHandler) GetHandler(c *gin.Context) {
	gatewayID := strings.ToLower(c.Param("gateway_id"))

	gateway, err := h.gatewayUseCase.Get(c.Request.Context(), SessionFromContext(c), gatewayID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGatewayToResponse(gateway))
}

// UpdateHandler replaces the editable fields of a gateway.
// PUT /v1/gateways/:gateway_id - body {"gateway": {...}}; the body id must
// match the path id.
func (h *GatewayHandler) UpdateHandler(c *gin.Context) {
	gateway, ok := h.bindGateway(c)
	if !ok {
		return
	}

	if gateway.ID != strings.ToLower(c.Param("gateway_id")) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("gateway id in body does not match the path"),
			h.logger)
		return
	}

	updated, err := h.gatewayUseCase.Update(
		c.Request.Context(),
		SessionFromContext(c),
		&gatewayDomain.UpdateGatewayRequest{Gateway: gateway},
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGatewayToResponse(updated))
}

// ListByTenantHandler returns a page of the gateways of a tenant.
// GET /v1/tenants/:tenant_id/gateways?offset=&limit=
func (h *GatewayHandler) ListByTenantHandler(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenant_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid tenant ID format: must be a valid UUID"),
			h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	gateways, err := h.gatewayUseCase.List(c.Request.Context(), SessionFromContext(c), tenantID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGatewaysToListResponse(gateways))
}

// bindGateway decodes and validates a {"gateway": {...}} body. It writes the
// error response itself and reports false on failure.
func (h *GatewayHandler) bindGateway(c *gin.Context) (*gatewayDomain.Gateway, bool) {
	var req dto.GatewayEnvelope

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}

	return req.Gateway.ToDomain(), true
}
