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

const pgGatewayColumns = `gateway_id, tenant_id, name, description, latitude, longitude, altitude,
			  stats_interval_secs, tags, properties, created_at, updated_at, last_seen_at`

// PostgreSQLGatewayRepository handles gateway persistence for PostgreSQL.
type PostgreSQLGatewayRepository struct {
	db *sql.DB
}

// NewPostgreSQLGatewayRepository creates a new PostgreSQLGatewayRepository.
func NewPostgreSQLGatewayRepository(db *sql.DB) *PostgreSQLGatewayRepository {
	return &PostgreSQLGatewayRepository{db: db}
}

// Create inserts a new gateway.
func (r *PostgreSQLGatewayRepository) Create(ctx context.Context, gateway *gatewayDomain.Gateway) error {
	querier := database.GetTx(ctx, r.db)

	tags, err := encodeStringMap(gateway.Tags)
	if err != nil {
		return err
	}
	properties, err := encodeStringMap(gateway.Properties)
	if err != nil {
		return err
	}

	query := `INSERT INTO gateways (` + pgGatewayColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = querier.ExecContext(ctx, query,
		gateway.ID, gateway.TenantID, gateway.Name, gateway.Description,
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

// Update replaces the editable columns of a gateway.
func (r *PostgreSQLGatewayRepository) Update(ctx context.Context, gateway *gatewayDomain.Gateway) error {
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
			  SET name = $1, description = $2, latitude = $3, longitude = $4, altitude = $5,
			      stats_interval_secs = $6, tags = $7, properties = $8, updated_at = $9
			  WHERE gateway_id = $10`

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
	if rows == 0 {
		return gatewayDomain.ErrGatewayNotFound
	}
	return nil
}

// Get retrieves a gateway by its EUI.
func (r *PostgreSQLGatewayRepository) Get(ctx context.Context, gatewayID string) (*gatewayDomain.Gateway, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgGatewayColumns + ` FROM gateways WHERE gateway_id = $1`

	gateway, err := scanPostgreSQLGateway(querier.QueryRowContext(ctx, query, gatewayID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gatewayDomain.ErrGatewayNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get gateway")
	}
	return gateway, nil
}

// ListByTenant returns the gateways of a tenant ordered by name.
func (r *PostgreSQLGatewayRepository) ListByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*gatewayDomain.Gateway, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgGatewayColumns + ` FROM gateways
			  WHERE tenant_id = $1
			  ORDER BY name ASC, gateway_id ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list gateways")
	}
	defer rows.Close() //nolint:errcheck

	gateways := make([]*gatewayDomain.Gateway, 0)
	for rows.Next() {
		gateway, err := scanPostgreSQLGateway(rows)
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
func (r *PostgreSQLGatewayRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, r.db)

	var count int
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM gateways WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count gateways")
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLGateway(row rowScanner) (*gatewayDomain.Gateway, error) {
	var gateway gatewayDomain.Gateway
	var tags, properties []byte

	err := row.Scan(
		&gateway.ID, &gateway.TenantID, &gateway.Name, &gateway.Description,
		&gateway.Location.Latitude, &gateway.Location.Longitude, &gateway.Location.Altitude,
		&gateway.StatsIntervalSecs, &tags, &properties,
		&gateway.CreatedAt, &gateway.UpdatedAt, &gateway.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}

	if gateway.Tags, err = decodeStringMap(tags); err != nil {
		return nil, err
	}
	if gateway.Properties, err = decodeStringMap(properties); err != nil {
		return nil, err
	}

	return &gateway, nil
}
