package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/gatewayconsole/internal/database"
	apperrors "github.com/allisson/gatewayconsole/internal/errors"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
)

const mysqlGatewayColumns = `gateway_id, tenant_id, name, description, latitude, longitude, altitude,
			  stats_interval_secs, tags, properties, created_at, updated_at, last_seen_at`

// MySQLGatewayRepository handles gateway persistence for MySQL. Tenant IDs
// are stored as BINARY(16).
type MySQLGatewayRepository struct {
	db *sql.DB
}

// NewMySQLGatewayRepository creates a new MySQLGatewayRepository.
func NewMySQLGatewayRepository(db *sql.DB) *MySQLGatewayRepository {
	return &MySQLGatewayRepository{db: db}
}

// Create inserts a new gateway.
func (r *MySQLGatewayRepository) Create(ctx context.Context, gateway *gatewayDomain.Gateway) error {
	querier := database.GetTx(ctx, r.db)

	tenantIDBytes, err := gateway.TenantID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal tenant id")
	}
	tags, err := encodeStringMap(gateway.Tags)
	if err != nil {
		return err
	}
	properties, err := encodeStringMap(gateway.Properties)
	if err != nil {
		return err
	}

	query := `INSERT INTO gateways (` + mysqlGatewayColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query,
		gateway.ID, tenantIDBytes, gateway.Name, gateway.Description,
		gateway.Location.Latitude, gateway.Location.Longitude, gateway.Location.Altitude,
		gateway.StatsIntervalSecs, tags, properties,
		gateway.CreatedAt, gateway.UpdatedAt, gateway.LastSeenAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return gatewayDomain.ErrGatewayAlreadyExists
		}
		if database.IsForeignKeyViolation(err) {
			return tenantDomain.ErrTenantNotFound
		}
		return apperrors.Wrap(err, "failed to create gateway")
	}
	return nil
}

// Update replaces the editable columns of a gateway. MySQL reports zero
// affected rows when nothing changed, so existence is checked separately.
func (r *MySQLGatewayRepository) Update(ctx context.Context, gateway *gatewayDomain.Gateway) error {
	querier := database.GetTx(ctx, r.db)

	tags, err := encodeStringMap(gateway.Tags)
	if err != nil {
		return err
	}
	properties, err := encodeStringMap(gateway.Properties)
	if err != nil {
		return err
	}

	query := `UPDATE gateways
			  SET name = ?, description = ?, latitude = ?, longitude = ?, altitude = ?,
			      stats_interval_secs = ?, tags = ?, properties = ?, updated_at = ?
			  WHERE gateway_id = ?`

	result, err := querier.ExecContext(ctx, query,
		gateway.Name, gateway.Description,
		gateway.Location.Latitude, gateway.Location.Longitude, gateway.Location.Altitude,
		gateway.StatsIntervalSecs, tags, properties, gateway.UpdatedAt, gateway.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update gateway")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	err = querier.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM gateways WHERE gateway_id = ?)`, gateway.ID,
	).Scan(&exists)
	if err != nil {
		return apperrors.Wrap(err, "failed to check gateway existence")
	}
	if !exists {
		return gatewayDomain.ErrGatewayNotFound
	}
	return nil
}

// Get retrieves a gateway by its EUI.
func (r *MySQLGatewayRepository) Get(ctx context.Context, gatewayID string) (*gatewayDomain.Gateway, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlGatewayColumns + ` FROM gateways WHERE gateway_id = ?`

	gateway, err := scanMySQLGateway(querier.QueryRowContext(ctx, query, gatewayID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gatewayDomain.ErrGatewayNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get gateway")
	}
	return gateway, nil
}

// ListByTenant returns the gateways of a tenant ordered by name.
func (r *MySQLGatewayRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*gatewayDomain.Gateway, error) {
	querier := database.GetTx(ctx, r.db)

	tenantIDBytes, err := tenantID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal tenant id")
	}

	query := `SELECT ` + mysqlGatewayColumns + ` FROM gateways
			  WHERE tenant_id = ?
			  ORDER BY name ASC, gateway_id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, tenantIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list gateways")
	}
	defer rows.Close() //nolint:errcheck

	gateways := make([]*gatewayDomain.Gateway, 0)
	for rows.Next() {
		gateway, err := scanMySQLGateway(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan gateway")
		}
		gateways = append(gateways, gateway)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate gateways")
	}

	return gateways, nil
}

// CountByTenant returns how many gateways a tenant owns.
func (r *MySQLGatewayRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, r.db)

	tenantIDBytes, err := tenantID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal tenant id")
	}

	var count int
	err = querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM gateways WHERE tenant_id = ?`, tenantIDBytes).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count gateways")
	}
	return count, nil
}

func scanMySQLGateway(row rowScanner) (*gatewayDomain.Gateway, error) {
	var gateway gatewayDomain.Gateway
	var tenantID, tags, properties []byte

	err := row.Scan(
		&gateway.ID, &tenantID, &gateway.Name, &gateway.Description,
		&gateway.Location.Latitude, &gateway.Location.Longitude, &gateway.Location.Altitude,
		&gateway.StatsIntervalSecs, &tags, &properties,
		&gateway.CreatedAt, &gateway.UpdatedAt, &gateway.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}

	if err := gateway.TenantID.UnmarshalBinary(tenantID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal tenant id")
	}
	if gateway.Tags, err = decodeStringMap(tags); err != nil {
		return nil, err
	}
	if gateway.Properties, err = decodeStringMap(properties); err != nil {
		return nil, err
	}

	return &gateway, nil
}
