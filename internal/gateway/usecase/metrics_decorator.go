package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatewayconsole/internal/authz"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	"github.com/allisson/gatewayconsole/internal/metrics"
)

const metricsDomain = "gateways"

type gatewayUseCaseWithMetrics struct {
	next    GatewayUseCase
	metrics metrics.BusinessMetrics
}

// NewGatewayUseCaseWithMetrics wraps a GatewayUseCase with metrics recording.
func NewGatewayUseCaseWithMetrics(useCase GatewayUseCase, m metrics.BusinessMetrics) GatewayUseCase {
	return &gatewayUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (g *gatewayUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	g.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	g.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (g *gatewayUseCaseWithMetrics) Create(
	ctx context.Context,
	session authz.Session,
	gateway *gatewayDomain.Gateway,
) (*gatewayDomain.Gateway, error) {
	start := time.Now()
	created, err := g.next.Create(ctx, session, gateway)
	g.record(ctx, "create", start, err)
	return created, err
}

func (g *gatewayUseCaseWithMetrics) Get(
	ctx context.Context,
	session authz.Session,
	gatewayID string,
) (*gatewayDomain.Gateway, error) {
	start := time.Now()
	gateway, err := g.next.Get(ctx, session, gatewayID)
	g.record(ctx, "get", start, err)
	return gateway, err
}

func (g *gatewayUseCaseWithMetrics) List(
	ctx context.Context,
	session authz.Session,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*gatewayDomain.Gateway, error) {
	start := time.Now()
	gateways, err := g.next.List(ctx, session, tenantID, offset, limit)
	g.record(ctx, "list", start, err)
	return gateways, err
}

func (g *gatewayUseCaseWithMetrics) Update(
	ctx context.Context,
	session authz.Session,
	req *gatewayDomain.UpdateGatewayRequest,
) (*gatewayDomain.Gateway, error) {
	start := time.Now()
	updated, err := g.next.Update(ctx, session, req)
	g.record(ctx, "update", start, err)
	return updated, err
}
