package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gatewayconsole/cmd/app/commands"
	"github.com/allisson/gatewayconsole/internal/app"
	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	"github.com/allisson/gatewayconsole/internal/config"
	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-tenant",
			Usage: "Create a tenant",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Tenant name",
				},
				&cli.StringFlag{
					Name:    "description",
					Aliases: []string{"d"},
					Usage:   "Tenant description",
				},
				&cli.BoolFlag{
					Name:  "can-have-gateways",
					Value: true,
					Usage: "Whether gateways may be created in the tenant",
				},
				&cli.IntFlag{
					Name:  "max-gateway-count",
					Value: 0,
					Usage: "Maximum number of gateways (0 means unlimited)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tenantUseCase, err := container.TenantUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateTenant(
					ctx,
					tenantUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					&tenantDomain.CreateTenantInput{
						Name:            cmd.String("name"),
						Description:     cmd.String("description"),
						CanHaveGateways: cmd.Bool("can-have-gateways"),
						MaxGatewayCount: int(cmd.Int("max-gateway-count")),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-user",
			Usage: "Create an active user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "User email",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "User password (omit to read it from stdin)",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Value: false,
					Usage: "Grant the global admin role",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("email"),
					cmd.String("password"),
					cmd.Bool("admin"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "set-tenant-user",
			Usage: "Grant a user roles within a tenant",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "tenant-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Tenant ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "User email",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Usage: "Tenant admin role",
				},
				&cli.BoolFlag{
					Name:  "device-admin",
					Usage: "Device admin role",
				},
				&cli.BoolFlag{
					Name:  "gateway-admin",
					Usage: "Gateway admin role",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetTenantUser(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("tenant-id"),
					cmd.String("email"),
					authDomain.TenantRoles{
						IsAdmin:        cmd.Bool("admin"),
						IsDeviceAdmin:  cmd.Bool("device-admin"),
						IsGatewayAdmin: cmd.Bool("gateway-admin"),
					},
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
