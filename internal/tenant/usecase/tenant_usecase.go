// Package usecase implements tenant management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
)

// TenantRepository defines persistence operations for tenants.
type TenantRepository interface {
	Create(ctx context.Context, tenant *tenantDomain.Tenant) error
	// Get returns ErrTenantNotFound when the tenant does not exist.
	Get(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Tenant, error)
}

// TenantUseCase defines tenant operations used by the CLI and the gateway service.
type TenantUseCase interface {
	Create(ctx context.Context, input *tenantDomain.CreateTenantInput) (*tenantDomain.Tenant, error)
	Get(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Tenant, error)
}

type tenantUseCase struct {
	tenantRepo TenantRepository
}

// NewTenantUseCase creates a new TenantUseCase.
func NewTenantUseCase(tenantRepo TenantRepository) TenantUseCase {
	return &tenantUseCase{tenantRepo: tenantRepo}
}

func (t *tenantUseCase) Create(
	ctx context.Context,
	input *tenantDomain.CreateTenantInput,
) (*tenantDomain.Tenant, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tenant := &tenantDomain.Tenant{
		ID:              uuid.Must(uuid.NewV7()),
		Name:            input.Name,
		Description:     input.Description,
		CanHaveGateways: input.CanHaveGateways,
		MaxGatewayCount: input.MaxGatewayCount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := t.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return tenant, nil
}

func (t *tenantUseCase) Get(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Tenant, error) {
	return t.tenantRepo.Get(ctx, tenantID)
}
