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

// MySQLTenantRepository handles tenant persistence for MySQL. IDs are stored as BINARY(16).
type MySQLTenantRepository struct {
	db *sql.DB
}

// NewMySQLTenantRepository creates a new MySQLTenantRepository.
func NewMySQLTenantRepository(db *sql.DB) *MySQLTenantRepository {
	return &MySQLTenantRepository{db: db}
}

// Create inserts a new tenant.
func (r *MySQLTenantRepository) Create(ctx context.Context, tenant *tenantDomain.Tenant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tenants (id, name, description, can_have_gateways, max_gateway_count, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	idBytes, err := tenant.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal tenant id")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, tenant.Name, tenant.Description,
		tenant.CanHaveGateways, tenant.MaxGatewayCount, tenant.CreatedAt, tenant.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create tenant")
	}
	return nil
}

// Get retrieves a tenant by ID.
func (r *MySQLTenantRepository) Get(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Tenant, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, can_have_gateways, max_gateway_count, created_at, updated_at
			  FROM tenants WHERE id = ?`

	idBytes, err := tenantID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal tenant id")
	}

	var tenant tenantDomain.Tenant
	var scannedID []byte
	err = querier.QueryRowContext(ctx, query, idBytes).Scan(
		&scannedID, &tenant.Name, &tenant.Description, &tenant.CanHaveGateways,
		&tenant.MaxGatewayCount, &tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tenantDomain.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get tenant")
	}

	if err := tenant.ID.UnmarshalBinary(scannedID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal tenant id")
	}

	return &tenant, nil
}
