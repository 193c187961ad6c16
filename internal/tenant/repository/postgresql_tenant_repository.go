// Package repository provides tenant persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/gatewayconsole/internal/database"
	apperrors "github.com/allisson/gatewayconsole/internal/errors"
	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
)

// PostgreSQLTenantRepository handles tenant persistence for PostgreSQL.
type PostgreSQLTenantRepository struct {
	db *sql.DB
}

// NewPostgreSQLTenantRepository creates a new PostgreSQLTenantRepository.
func NewPostgreSQLTenantRepository(db *sql.DB) *PostgreSQLTenantRepository {
	return &PostgreSQLTenantRepository{db: db}
}

// Create inserts a new tenant.
func (r *PostgreSQLTenantRepository) Create(ctx context.Context, tenant *tenantDomain.Tenant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tenants (id, name, description, can_have_gateways, max_gateway_count, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(ctx, query, tenant.ID, tenant.Name, tenant.Description,
		tenant.CanHaveGateways, tenant.MaxGatewayCount, tenant.CreatedAt, tenant.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create tenant")
	}
	return nil
}

// Get retrieves a tenant by ID.
func (r *PostgreSQLTenantRepository) Get(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Tenant, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, can_have_gateways, max_gateway_count, created_at, updated_at
			  FROM tenants WHERE id = $1`

	var tenant tenantDomain.Tenant
	err := querier.QueryRowContext(ctx, query, tenantID).Scan(
		&tenant.ID, &tenant.Name, &tenant.Description, &tenant.CanHaveGateways,
		&tenant.MaxGatewayCount, &tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tenantDomain.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get tenant")
	}

	return &tenant, nil
}
