package domain

import (
	"github.com/allisson/gatewayconsole/internal/errors"
)

// Gateway errors.
var (
	// ErrGatewayNotFound indicates a gateway with the specified ID was not found.
	ErrGatewayNotFound = errors.Wrap(errors.ErrNotFound, "gateway not found")

	// ErrGatewayAlreadyExists indicates the gateway ID is already registered.
	ErrGatewayAlreadyExists = errors.Wrap(errors.ErrConflict, "gateway already exists")

	// ErrTenantChangeNotAllowed indicates an update tried to move a gateway to another tenant.
	ErrTenantChangeNotAllowed = errors.Wrap(errors.ErrInvalidInput, "gateway tenant cannot be changed")

	// ErrTenantCannotHaveGateways indicates the tenant is not allowed to own gateways.
	ErrTenantCannotHaveGateways = errors.Wrap(errors.ErrInvalidInput, "tenant can not have gateways")

	// ErrMaxGatewayCountReached indicates the tenant already owns its maximum number of gateways.
	ErrMaxGatewayCountReached = errors.Wrap(errors.ErrInvalidInput, "tenant max gateway count reached")

	// ErrPermissionDenied indicates the session may not act on the gateway tenant.
	ErrPermissionDenied = errors.Wrap(errors.ErrForbidden, "permission denied")
)
