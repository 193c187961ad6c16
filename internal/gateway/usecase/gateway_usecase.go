package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatewayconsole/internal/authz"
	"github.com/allisson/gatewayconsole/internal/database"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	outboxDomain "github.com/allisson/gatewayconsole/internal/outbox/domain"
)

// userIdentifier is implemented by sessions that carry a user id.
type userIdentifier interface {
	ActorID() uuid.UUID
}

type gatewayUseCase struct {
	txManager   database.TxManager
	gatewayRepo GatewayRepository
	tenantRepo  TenantRepository
	outboxRepo  OutboxEventRepository
}

// NewGatewayUseCase creates a new GatewayUseCase.
func NewGatewayUseCase(
	txManager database.TxManager,
	gatewayRepo GatewayRepository,
	tenantRepo TenantRepository,
	outboxRepo OutboxEventRepository,
) GatewayUseCase {
	return &gatewayUseCase{
		txManager:   txManager,
		gatewayRepo: gatewayRepo,
		tenantRepo:  tenantRepo,
		outboxRepo:  outboxRepo,
	}
}

func (g *gatewayUseCase) Create(
	ctx context.Context,
	session authz.Session,
	gateway *gatewayDomain.Gateway,
) (*gatewayDomain.Gateway, error) {
	if gateway.StatsIntervalSecs == 0 {
		gateway.StatsIntervalSecs = gatewayDomain.DefaultStatsIntervalSecs
	}
	gateway.Normalize()
	if err := gateway.Validate(); err != nil {
		return nil, err
	}

	if !authz.CanCreateGateway(session, gateway.TenantID) {
		return nil, gatewayDomain.ErrPermissionDenied
	}

	now := time.Now().UTC()
	gateway.CreatedAt = now
	gateway.UpdatedAt = now
	gateway.LastSeenAt = nil

	err := g.txManager.WithTx(ctx, func(ctx context.Context) error {
		tenant, err := g.tenantRepo.Get(ctx, gateway.TenantID)
		if err != nil {
			return err
		}

		if !tenant.CanHaveGateways {
			return gatewayDomain.ErrTenantCannotHaveGateways
		}

		count, err := g.gatewayRepo.CountByTenant(ctx, tenant.ID)
		if err != nil {
			return err
		}
		if !tenant.AcceptsGateways(count) {
			return gatewayDomain.ErrMaxGatewayCountReached
		}

		if err := g.gatewayRepo.Create(ctx, gateway); err != nil {
			return err
		}

		return g.enqueue(ctx, session, gatewayDomain.EventGatewayCreated, gateway)
	})
	if err != nil {
		return nil, err
	}

	return gateway, nil
}

func (g *gatewayUseCase) Get(
	ctx context.Context,
	session authz.Session,
	gatewayID string,
) (*gatewayDomain.Gateway, error) {
	gateway, err := g.gatewayRepo.Get(ctx, gatewayID)
	if err != nil {
		return nil, err
	}

	if !authz.CanViewGateway(session, gateway.TenantID) {
		return nil, gatewayDomain.ErrPermissionDenied
	}

	return gateway, nil
}

func (g *gatewayUseCase) List(
	ctx context.Context,
	session authz.Session,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*gatewayDomain.Gateway, error) {
	if !authz.CanViewGateway(session, tenantID) {
		return nil, gatewayDomain.ErrPermissionDenied
	}

	return g.gatewayRepo.ListByTenant(ctx, tenantID, offset, limit)
}

func (g *gatewayUseCase) Update(
	ctx context.Context,
	session authz.Session,
	req *gatewayDomain.UpdateGatewayRequest,
) (*gatewayDomain.Gateway, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	submitted := *req.Gateway
	submitted.Normalize()

	var updated *gatewayDomain.Gateway
	err := g.txManager.WithTx(ctx, func(ctx context.Context) error {
		stored, err := g.gatewayRepo.Get(ctx, submitted.ID)
		if err != nil {
			return err
		}

		if !authz.CanEditGateway(session, stored.TenantID) {
			return gatewayDomain.ErrPermissionDenied
		}

		if submitted.TenantID != stored.TenantID {
			return gatewayDomain.ErrTenantChangeNotAllowed
		}

		stored.Name = submitted.Name
		stored.Description = submitted.Description
		stored.Location = submitted.Location
		stored.StatsIntervalSecs = submitted.StatsIntervalSecs
		stored.Tags = submitted.Tags
		stored.Properties = submitted.Properties
		stored.UpdatedAt = time.Now().UTC()

		if err := g.gatewayRepo.Update(ctx, stored); err != nil {
			return err
		}

		updated = stored
		return g.enqueue(ctx, session, gatewayDomain.EventGatewayUpdated, stored)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (g *gatewayUseCase) enqueue(
	ctx context.Context,
	session authz.Session,
	eventType string,
	gateway *gatewayDomain.Gateway,
) error {
	payload := gatewayDomain.GatewayEvent{
		GatewayID: gateway.ID,
		TenantID:  gateway.TenantID,
		Name:      gateway.Name,
		Timestamp: gateway.UpdatedAt,
	}
	if actor, ok := session.(userIdentifier); ok {
		payload.UserID = actor.ActorID()
	}

	event, err := outboxDomain.NewOutboxEvent(eventType, payload)
	if err != nil {
		return err
	}

	return g.outboxRepo.Create(ctx, event)
}
