// Package usecase implements the gateway service. Every operation enforces
// authorization on the server side, independently of what the console showed.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/gatewayconsole/internal/authz"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	outboxDomain "github.com/allisson/gatewayconsole/internal/outbox/domain"
	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
)

// GatewayRepository defines persistence operations for gateways.
type GatewayRepository interface {
	Create(ctx context.Context, gateway *gatewayDomain.Gateway) error
	Update(ctx context.Context, gateway *gatewayDomain.Gateway) error
	// Get returns ErrGatewayNotFound when the gateway does not exist.
	Get(ctx context.Context, gatewayID string) (*gatewayDomain.Gateway, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]*gatewayDomain.Gateway, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
}

// TenantRepository is the tenant lookup needed by gateway creation.
type TenantRepository interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Tenant, error)
}

// OutboxEventRepository stores events in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// GatewayUseCase defines the gateway service operations.
type GatewayUseCase interface {
	// Create registers a gateway for its tenant. The tenant must allow gateways
	// and be below its gateway limit.
	Create(ctx context.Context, session authz.Session, gateway *gatewayDomain.Gateway) (*gatewayDomain.Gateway, error)

	// Get returns a gateway the session may view.
	Get(ctx context.Context, session authz.Session, gatewayID string) (*gatewayDomain.Gateway, error)

	// List returns the gateways of a tenant the session may view.
	List(
		ctx context.Context,
		session authz.Session,
		tenantID uuid.UUID,
		offset, limit int,
	) ([]*gatewayDomain.Gateway, error)

	// Update replaces the editable fields of an existing gateway with the
	// snapshot wrapped by req. The session must be allowed to edit gateways of
	// the stored tenant and the tenant itself cannot change.
	Update(
		ctx context.Context,
		session authz.Session,
		req *gatewayDomain.UpdateGatewayRequest,
	) (*gatewayDomain.Gateway, error)
}
