package app

import (
	"fmt"

	"github.com/allisson/gatewayconsole/internal/database"
	"github.com/allisson/gatewayconsole/internal/events"
	outboxRepository "github.com/allisson/gatewayconsole/internal/outbox/repository"
	outboxUseCase "github.com/allisson/gatewayconsole/internal/outbox/usecase"
)

// OutboxRepository returns the outbox event repository for the configured driver.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	var err error
	c.outboxRepositoryInit.Do(func() {
		c.outboxRepository, err = c.initOutboxRepository()
		if err != nil {
			c.initErrors["outboxRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxRepository"]; exists {
		return nil, storedErr
	}
	return c.outboxRepository, nil
}

// EventPublisher returns the NATS publisher when NATS_URL is set and a no-op
// publisher otherwise.
func (c *Container) EventPublisher() (events.Publisher, error) {
	var err error
	c.publisherInit.Do(func() {
		c.publisher, err = c.initEventPublisher()
		if err != nil {
			c.initErrors["publisher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publisher"]; exists {
		return nil, storedErr
	}
	return c.publisher, nil
}

// OutboxUseCase returns the outbox relay.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.initErrors["outboxUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

func (c *Container) initOutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
	case database.DriverMySQL:
		return outboxRepository.NewMySQLOutboxEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initEventPublisher() (events.Publisher, error) {
	if c.config.NATSURL == "" {
		return events.NewNoopPublisher(), nil
	}
	publisher, err := events.NewNATSPublisher(c.config.NATSURL, c.config.NATSSubjectPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}
	return publisher, nil
}

func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	var processor outboxUseCase.EventProcessor
	if c.config.NATSURL == "" {
		processor = outboxUseCase.NewLogEventProcessor(c.Logger())
	} else {
		publisher, err := c.EventPublisher()
		if err != nil {
			return nil, fmt.Errorf("failed to get event publisher for outbox use case: %w", err)
		}
		processor = outboxUseCase.NewPublishEventProcessor(publisher)
	}

	return outboxUseCase.NewOutboxUseCase(
		outboxUseCase.Config{
			Interval:   c.config.OutboxInterval,
			BatchSize:  c.config.OutboxBatchSize,
			MaxRetries: c.config.OutboxMaxRetries,
		},
		txManager,
		outboxRepo,
		processor,
		c.Logger(),
	), nil
}
