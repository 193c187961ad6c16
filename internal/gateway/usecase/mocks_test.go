package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	outboxDomain "github.com/allisson/gatewayconsole/internal/outbox/domain"
	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
)

// inlineTxManager runs fn without a real transaction.
type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockGatewayRepository struct {
	mock.Mock
}

func (m *mockGatewayRepository) Create(ctx context.Context, gateway *gatewayDomain.Gateway) error {
	return m.Called(ctx, gateway).Error(0)
}

func (m *mockGatewayRepository) Update(ctx context.Context, gateway *gatewayDomain.Gateway) error {
	return m.Called(ctx, gateway).Error(0)
}

func (m *mockGatewayRepository) Get(ctx context.Context, gatewayID string) (*gatewayDomain.Gateway, error) {
	args := m.Called(ctx, gatewayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gatewayDomain.Gateway), args.Error(1)
}

func (m *mockGatewayRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*gatewayDomain.Gateway, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gatewayDomain.Gateway), args.Error(1)
}

func (m *mockGatewayRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type mockTenantRepository struct {
	mock.Mock
}

func (m *mockTenantRepository) Get(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenantDomain.Tenant), args.Error(1)
}

type mockOutboxRepository struct {
	mock.Mock
}

func (m *mockOutboxRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	return m.Called(ctx, event).Error(0)
}

func tenantAdmin(tenantID uuid.UUID) *authDomain.Claims {
	return &authDomain.Claims{
		UserID:  uuid.Must(uuid.NewV7()),
		Tenants: map[uuid.UUID]authDomain.TenantRoles{tenantID: {IsAdmin: true}},
	}
}

func gatewayAdmin(tenantID uuid.UUID) *authDomain.Claims {
	return &authDomain.Claims{
		UserID:  uuid.Must(uuid.NewV7()),
		Tenants: map[uuid.UUID]authDomain.TenantRoles{tenantID: {IsGatewayAdmin: true}},
	}
}

func tenantMember(tenantID uuid.UUID) *authDomain.Claims {
	return &authDomain.Claims{
		UserID:  uuid.Must(uuid.NewV7()),
		Tenants: map[uuid.UUID]authDomain.TenantRoles{tenantID: {}},
	}
}
