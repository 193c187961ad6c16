package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	"github.com/allisson/gatewayconsole/internal/database"
	apperrors "github.com/allisson/gatewayconsole/internal/errors"
)

// PostgreSQLTenantUserRepository handles tenant membership persistence for PostgreSQL.
type PostgreSQLTenantUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLTenantUserRepository creates a new PostgreSQLTenantUserRepository.
func NewPostgreSQLTenantUserRepository(db *sql.DB) *PostgreSQLTenantUserRepository {
	return &PostgreSQLTenantUserRepository{db: db}
}

// Upsert creates the membership or replaces its roles, keeping created_at.
func (r *PostgreSQLTenantUserRepository) Upsert(ctx context.Context, tenantUser *authDomain.TenantUser) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tenant_users (tenant_id, user_id, is_admin, is_device_admin, is_gateway_admin, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (tenant_id, user_id) DO UPDATE
			  SET is_admin = EXCLUDED.is_admin,
			      is_device_admin = EXCLUDED.is_device_admin,
			      is_gateway_admin = EXCLUDED.is_gateway_admin,
			      updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(ctx, query,
		tenantUser.TenantID, tenantUser.UserID,
		tenantUser.IsAdmin, tenantUser.IsDeviceAdmin, tenantUser.IsGatewayAdmin,
		tenantUser.CreatedAt, tenantUser.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert tenant user")
	}
	return nil
}

// ListByUser returns every membership of a user.
func (r *PostgreSQLTenantUserRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*authDomain.TenantUser, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT tenant_id, user_id, is_admin, is_device_admin, is_gateway_admin, created_at, updated_at
			  FROM tenant_users WHERE user_id = $1 ORDER BY tenant_id`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tenant users")
	}
	defer rows.Close() //nolint:errcheck

	memberships := make([]*authDomain.TenantUser, 0)
	for rows.Next() {
		var tu authDomain.TenantUser
		if err := rows.Scan(
			&tu.TenantID, &tu.UserID, &tu.IsAdmin, &tu.IsDeviceAdmin, &tu.IsGatewayAdmin, &tu.CreatedAt, &tu.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tenant user")
		}
		memberships = append(memberships, &tu)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tenant users")
	}
	return memberships, nil
}
