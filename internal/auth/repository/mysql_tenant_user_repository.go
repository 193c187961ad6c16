package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	"github.com/allisson/gatewayconsole/internal/database"
	apperrors "github.com/allisson/gatewayconsole/internal/errors"
)

// MySQLTenantUserRepository handles tenant membership persistence for MySQL.
type MySQLTenantUserRepository struct {
	db *sql.DB
}

// NewMySQLTenantUserRepository creates a new MySQLTenantUserRepository.
func NewMySQLTenantUserRepository(db *sql.DB) *MySQLTenantUserRepository {
	return &MySQLTenantUserRepository{db: db}
}

// Upsert creates the membership or replaces its roles, keeping created_at.
func (r *MySQLTenantUserRepository) Upsert(ctx context.Context, tenantUser *authDomain.TenantUser) error {
	querier := database.GetTx(ctx, r.db)

	tenantID, err := tenantUser.TenantID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal tenant id")
	}
	userID, err := tenantUser.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO tenant_users (tenant_id, user_id, is_admin, is_device_admin, is_gateway_admin, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			      is_admin = VALUES(is_admin),
			      is_device_admin = VALUES(is_device_admin),
			      is_gateway_admin = VALUES(is_gateway_admin),
			      updated_at = VALUES(updated_at)`

	_, err = querier.ExecContext(ctx, query,
		tenantID, userID,
		tenantUser.IsAdmin, tenantUser.IsDeviceAdmin, tenantUser.IsGatewayAdmin,
		tenantUser.CreatedAt, tenantUser.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert tenant user")
	}
	return nil
}

// ListByUser returns every membership of a user.
func (r *MySQLTenantUserRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*authDomain.TenantUser, error) {
	querier := database.GetTx(ctx, r.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT tenant_id, user_id, is_admin, is_device_admin, is_gateway_admin, created_at, updated_at
			  FROM tenant_users WHERE user_id = ? ORDER BY tenant_id`

	rows, err := querier.QueryContext(ctx, query, userIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tenant users")
	}
	defer rows.Close() //nolint:errcheck

	memberships := make([]*authDomain.TenantUser, 0)
	for rows.Next() {
		var tu authDomain.TenantUser
		var tenantID, memberID []byte
		if err := rows.Scan(
			&tenantID, &memberID, &tu.IsAdmin, &tu.IsDeviceAdmin, &tu.IsGatewayAdmin, &tu.CreatedAt, &tu.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan tenant user")
		}
		if err := tu.TenantID.UnmarshalBinary(tenantID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal tenant id")
		}
		if err := tu.UserID.UnmarshalBinary(memberID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal user id")
		}
		memberships = append(memberships, &tu)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate tenant users")
	}
	return memberships, nil
}
