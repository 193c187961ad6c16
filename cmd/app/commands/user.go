package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	authUseCase "github.com/allisson/gatewayconsole/internal/auth/usecase"
)

// RunCreateUser registers an active user. When password is empty it is read
// from the first line of io.Reader.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase authUseCase.UserUseCase,
	logger *slog.Logger,
	email string,
	password string,
	isAdmin bool,
	format string,
	io IOTuple,
) error {
	logger.Info("creating user", slog.String("email", email), slog.Bool("is_admin", isAdmin))

	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to get password: %w", err)
		}
	}

	user, err := userUseCase.CreateUser(ctx, &authDomain.CreateUserInput{
		Email:    email,
		Password: password,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		err = writeJSON(io.Writer, map[string]any{
			"id":         user.ID.String(),
			"email":      user.Email,
			"is_admin":   user.IsAdmin,
			"is_active":  user.IsActive,
			"created_at": user.CreatedAt.Format(time.RFC3339),
		})
	} else {
		_, err = fmt.Fprintf(io.Writer, "User created successfully\nID: %s\nEmail: %s\n", user.ID, user.Email)
	}
	if err != nil {
		return err
	}

	logger.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// RunSetTenantUser grants roles within a tenant to the user with the given
// email, replacing any roles the user already holds there.
//
// Requirements: Database must be migrated and accessible.
func RunSetTenantUser(
	ctx context.Context,
	userUseCase authUseCase.UserUseCase,
	logger *slog.Logger,
	tenantID string,
	email string,
	roles authDomain.TenantRoles,
	format string,
	io IOTuple,
) error {
	parsedTenantID, err := uuid.Parse(tenantID)
	if err != nil {
		return fmt.Errorf("invalid tenant id %q: %w", tenantID, err)
	}

	logger.Info("setting tenant user",
		slog.String("tenant_id", parsedTenantID.String()),
		slog.String("email", email),
	)

	tenantUser, err := userUseCase.SetTenantUser(ctx, &authDomain.SetTenantUserInput{
		TenantID:    parsedTenantID,
		Email:       email,
		TenantRoles: roles,
	})
	if err != nil {
		return fmt.Errorf("failed to set tenant user: %w", err)
	}

	if format == "json" {
		err = writeJSON(io.Writer, map[string]any{
			"tenant_id":        tenantUser.TenantID.String(),
			"user_id":          tenantUser.UserID.String(),
			"is_admin":         tenantUser.IsAdmin,
			"is_device_admin":  tenantUser.IsDeviceAdmin,
			"is_gateway_admin": tenantUser.IsGatewayAdmin,
		})
	} else {
		_, err = fmt.Fprintf(
			io.Writer,
			"Tenant user set successfully\nTenant: %s\nUser: %s\nAdmin: %t\nDevice admin: %t\nGateway admin: %t\n",
			tenantUser.TenantID,
			tenantUser.UserID,
			tenantUser.IsAdmin,
			tenantUser.IsDeviceAdmin,
			tenantUser.IsGatewayAdmin,
		)
	}
	if err != nil {
		return err
	}

	logger.Info("tenant user set successfully",
		slog.String("tenant_id", tenantUser.TenantID.String()),
		slog.String("user_id", tenantUser.UserID.String()),
	)
	return nil
}

func promptForPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Enter password: ")

	line, err := bufio.NewReader(io.Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(line)
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
