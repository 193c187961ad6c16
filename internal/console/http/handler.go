// Package http serves the console edit workflow: the GET endpoint renders the
// edit form model and the POST endpoint submits it and answers with a
// redirect to the gateway detail page.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/gatewayconsole/internal/console"
	"github.com/allisson/gatewayconsole/internal/console/http/dto"
	gatewayHTTP "github.com/allisson/gatewayconsole/internal/gateway/http"
	gatewayDTO "github.com/allisson/gatewayconsole/internal/gateway/http/dto"
	"github.com/allisson/gatewayconsole/internal/httputil"
	customValidation "github.com/allisson/gatewayconsole/internal/validation"
)

// ConsoleHandler handles the console edit form endpoints.
type ConsoleHandler struct {
	backend console.GatewayBackend
	store   *console.AsyncGatewayStore
	logger  *slog.Logger
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(
	backend console.GatewayBackend,
	store *console.AsyncGatewayStore,
	logger *slog.Logger,
) *ConsoleHandler {
	return &ConsoleHandler{
		backend: backend,
		store:   store,
		logger:  logger,
	}
}

// EditFormHandler renders the edit form of a gateway.
// GET /v1/console/gateways/:gateway_id/edit
func (h *ConsoleHandler) EditFormHandler(c *gin.Context) {
	session := gatewayHTTP.SessionFromContext(c)
	gatewayID := strings.ToLower(c.Param("gateway_id"))

	gateway, err := h.backend.Get(c.Request.Context(), session, gatewayID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	props := console.NewEditGateway(gateway, session, nil, nil).Render()
	c.JSON(http.StatusOK, dto.MapFormPropsToResponse(props))
}

// SubmitEditHandler submits the edit form and waits for the update to settle.
// POST /v1/console/gateways/:gateway_id/edit - body is the gateway form.
// Returns 303 See Other with the detail page as Location on success.
func (h *ConsoleHandler) SubmitEditHandler(c *gin.Context) {
	var req gatewayDTO.GatewayRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	edited := req.ToDomain()
	if edited.ID != strings.ToLower(c.Param("gateway_id")) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("gateway id in body does not match the path"),
			h.logger)
		return
	}

	session := gatewayHTTP.SessionFromContext(c)
	outcome := &submitOutcome{}
	edit := console.NewEditGateway(nil, session, h.store.For(session, outcome), outcome)

	select {
	case <-edit.OnFinish(c.Request.Context(), edited):
	case <-c.Request.Context().Done():
		// The update keeps running; nobody is left to answer.
		return
	}

	if outcome.redirect == "" {
		httputil.HandleErrorGin(c, outcome.err, h.logger)
		return
	}

	c.Header("Location", outcome.redirect)
	c.JSON(http.StatusSeeOther, dto.RedirectResponse{Redirect: outcome.redirect})
}

// submitOutcome is the navigator and notifier of one submission. Both fields
// are written before the update settles and read after.
type submitOutcome struct {
	redirect string
	err      error
}

func (o *submitOutcome) Navigate(path string) {
	o.redirect = path
}

func (o *submitOutcome) Notify(_ context.Context, err error) {
	o.err = err
}
