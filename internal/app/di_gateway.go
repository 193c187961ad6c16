package app

import (
	"fmt"

	"github.com/allisson/gatewayconsole/internal/console"
	consoleHTTP "github.com/allisson/gatewayconsole/internal/console/http"
	"github.com/allisson/gatewayconsole/internal/database"
	gatewayHTTP "github.com/allisson/gatewayconsole/internal/gateway/http"
	gatewayRepository "github.com/allisson/gatewayconsole/internal/gateway/repository"
	gatewayUseCase "github.com/allisson/gatewayconsole/internal/gateway/usecase"
	tenantRepository "github.com/allisson/gatewayconsole/internal/tenant/repository"
	tenantUseCase "github.com/allisson/gatewayconsole/internal/tenant/usecase"
)

// TenantRepository returns the tenant repository for the configured driver.
func (c *Container) TenantRepository() (tenantUseCase.TenantRepository, error) {
	var err error
	c.tenantRepositoryInit.Do(func() {
		c.tenantRepository, err = c.initTenantRepository()
		if err != nil {
			c.initErrors["tenantRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantRepository"]; exists {
		return nil, storedErr
	}
	return c.tenantRepository, nil
}

// TenantUseCase returns the tenant use case.
func (c *Container) TenantUseCase() (tenantUseCase.TenantUseCase, error) {
	var err error
	c.tenantUseCaseInit.Do(func() {
		var repo tenantUseCase.TenantRepository
		repo, err = c.TenantRepository()
		if err != nil {
			err = fmt.Errorf("failed to get tenant repository for tenant use case: %w", err)
			c.initErrors["tenantUseCase"] = err
			return
		}
		c.tenantUseCase = tenantUseCase.NewTenantUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantUseCase"]; exists {
		return nil, storedErr
	}
	return c.tenantUseCase, nil
}

// GatewayRepository returns the gateway repository for the configured driver.
func (c *Container) GatewayRepository() (gatewayUseCase.GatewayRepository, error) {
	var err error
	c.gatewayRepositoryInit.Do(func() {
		c.gatewayRepository, err = c.initGatewayRepository()
		if err != nil {
			c.initErrors["gatewayRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gatewayRepository"]; exists {
		return nil, storedErr
	}
	return c.gatewayRepository, nil
}

// GatewayUseCase returns the gateway service, instrumented when metrics are enabled.
func (c *Container) GatewayUseCase() (gatewayUseCase.GatewayUseCase, error) {
	var err error
	c.gatewayUseCaseInit.Do(func() {
		c.gatewayUseCase, err = c.initGatewayUseCase()
		if err != nil {
			c.initErrors["gatewayUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gatewayUseCase"]; exists {
		return nil, storedErr
	}
	return c.gatewayUseCase, nil
}

// GatewayHandler returns the gateway REST handler.
func (c *Container) GatewayHandler() (*gatewayHTTP.GatewayHandler, error) {
	var err error
	c.gatewayHandlerInit.Do(func() {
		var useCase gatewayUseCase.GatewayUseCase
		useCase, err = c.GatewayUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get gateway use case for gateway handler: %w", err)
			c.initErrors["gatewayHandler"] = err
			return
		}
		c.gatewayHandler = gatewayHTTP.NewGatewayHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gatewayHandler"]; exists {
		return nil, storedErr
	}
	return c.gatewayHandler, nil
}

// GatewayStore returns the store that dispatches console updates in the background.
// Shutdown waits for its pending updates.
func (c *Container) GatewayStore() (*console.AsyncGatewayStore, error) {
	var err error
	c.gatewayStoreInit.Do(func() {
		var useCase gatewayUseCase.GatewayUseCase
		useCase, err = c.GatewayUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get gateway use case for gateway store: %w", err)
			c.initErrors["gatewayStore"] = err
			return
		}
		c.gatewayStore = console.NewAsyncGatewayStore(useCase, c.config.ConsoleUpdateTimeout, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gatewayStore"]; exists {
		return nil, storedErr
	}
	return c.gatewayStore, nil
}

// ConsoleHandler returns the handler serving the gateway edit view.
func (c *Container) ConsoleHandler() (*consoleHTTP.ConsoleHandler, error) {
	var err error
	c.consoleHandlerInit.Do(func() {
		c.consoleHandler, err = c.initConsoleHandler()
		if err != nil {
			c.initErrors["consoleHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["consoleHandler"]; exists {
		return nil, storedErr
	}
	return c.consoleHandler, nil
}

func (c *Container) initTenantRepository() (tenantUseCase.TenantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tenant repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return tenantRepository.NewPostgreSQLTenantRepository(db), nil
	case database.DriverMySQL:
		return tenantRepository.NewMySQLTenantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initGatewayRepository() (gatewayUseCase.GatewayRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for gateway repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return gatewayRepository.NewPostgreSQLGatewayRepository(db), nil
	case database.DriverMySQL:
		return gatewayRepository.NewMySQLGatewayRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initGatewayUseCase() (gatewayUseCase.GatewayUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for gateway use case: %w", err)
	}

	gatewayRepo, err := c.GatewayRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway repository for gateway use case: %w", err)
	}

	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for gateway use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for gateway use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for gateway use case: %w", err)
	}

	useCase := gatewayUseCase.NewGatewayUseCase(txManager, gatewayRepo, tenantRepo, outboxRepo)
	return gatewayUseCase.NewGatewayUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initConsoleHandler() (*consoleHTTP.ConsoleHandler, error) {
	useCase, err := c.GatewayUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway use case for console handler: %w", err)
	}

	store, err := c.GatewayStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway store for console handler: %w", err)
	}

	return consoleHTTP.NewConsoleHandler(useCase, store, c.Logger()), nil
}
