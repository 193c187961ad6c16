package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
	tenantUseCase "github.com/allisson/gatewayconsole/internal/tenant/usecase"
)

// RunCreateTenant creates a tenant and prints its id in text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateTenant(
	ctx context.Context,
	useCase tenantUseCase.TenantUseCase,
	logger *slog.Logger,
	writer io.Writer,
	input *tenantDomain.CreateTenantInput,
	format string,
) error {
	logger.Info("creating tenant", slog.String("name", input.Name))

	tenant, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	if format == "json" {
		err = writeJSON(writer, map[string]any{
			"id":                tenant.ID.String(),
			"name":              tenant.Name,
			"description":       tenant.Description,
			"can_have_gateways": tenant.CanHaveGateways,
			"max_gateway_count": tenant.MaxGatewayCount,
			"created_at":        tenant.CreatedAt.Format(time.RFC3339),
		})
	} else {
		_, err = fmt.Fprintf(writer, "Tenant created successfully\nID: %s\nName: %s\n", tenant.ID, tenant.Name)
	}
	if err != nil {
		return err
	}

	logger.Info("tenant created successfully",
		slog.String("tenant_id", tenant.ID.String()),
		slog.String("name", tenant.Name),
	)

	return nil
}
