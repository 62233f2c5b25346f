package cmd

import (
	"errors"
	"log/slog"

	httpadapter "posrelay/internal/adapters/in/http"
	"posrelay/internal/adapters/out/eventbus"
	"posrelay/internal/adapters/out/kafka"
	memoryorderrepo "posrelay/internal/adapters/out/memory/orderrepo"
	"posrelay/internal/adapters/out/postgres"
	pgorderrepo "posrelay/internal/adapters/out/postgres/orderrepo"
	"posrelay/internal/adapters/out/rabbitmq"
	"posrelay/internal/adapters/out/sse"
	"posrelay/internal/core/application/usecases/commands"
	"posrelay/internal/core/application/usecases/queries"
	"posrelay/internal/core/ports"
	"posrelay/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB      *gorm.DB
	repo        ports.OrderRepository
	scheduler   *jobs.CronScheduler
	broadcaster *sse.Broadcaster
	relays      []*eventbus.Relay
	publisher   ports.OrderEventPublisher
}

// NewCompositionRoot builds the long-lived collaborators. Optional brokers
// that fail to connect are logged and skipped; the database is required when
// configured.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config: config,
		logger: logger,
	}

	if config.UsePostgres() {
		db, err := postgres.Open(postgres.Options{
			Host:     config.DBHost,
			Port:     config.DBPort,
			User:     config.DBUser,
			Password: config.DBPassword,
			Name:     config.DBName,
			SslMode:  config.DBSslMode,
		})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, err
		}
		c.gormDB = db
		c.repo = pgorderrepo.NewGormOrderRepository(db)
		logger.Info("Using PostgreSQL order store", "host", config.DBHost, "database", config.DBName)
	} else {
		c.repo = memoryorderrepo.NewMemoryOrderRepository()
		logger.Info("Using in-memory order store")
	}

	c.scheduler = jobs.NewCronScheduler(logger)
	c.broadcaster = sse.NewBroadcaster(logger, sse.WithKeepAlive(c.scheduler, config.KeepAliveInterval))

	publishers := []ports.OrderEventPublisher{sse.NewOrderEventPublisher(c.broadcaster)}
	for _, relay := range c.createRelays() {
		relay.Start()
		c.relays = append(c.relays, relay)
		publishers = append(publishers, relay)
	}
	c.publisher = eventbus.NewFanout(publishers...)

	return c, nil
}

func (c *CompositionRoot) createRelays() []*eventbus.Relay {
	var relays []*eventbus.Relay

	if c.config.KafkaHost != "" {
		producer, err := kafka.NewProducer(c.config.KafkaHost, c.config.KafkaOrderChangedTopic)
		if err != nil {
			c.logger.Warn("Kafka relay disabled", "error", err)
		} else {
			relays = append(relays, eventbus.NewRelay("kafka", producer, c.logger))
			c.logger.Info("Relaying order events to Kafka", "topic", producer.Topic())
		}
	}

	if c.config.AMQPURL != "" {
		publisher, err := rabbitmq.Dial(c.config.AMQPURL, c.config.AMQPExchange)
		if err != nil {
			c.logger.Warn("RabbitMQ relay disabled", "error", err)
		} else {
			relays = append(relays, eventbus.NewRelay("rabbitmq", publisher, c.logger))
			c.logger.Info("Relaying order events to RabbitMQ", "exchange", publisher.Exchange())
		}
	}

	return relays
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.repo, c.publisher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.repo, c.publisher)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.repo)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.repo)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.repo)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.scheduler, c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpadapter.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetUncompletedOrdersQueryHandler(),
		c.broadcaster,
		c.logger,
	)
	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		StaticDir: c.config.StaticDir,
		LogLevel:  c.config.EchoLogLevel(),
		Logger:    c.logger,
	})
}

// CloseStreams ends every open event stream so the HTTP server can shut down.
func (c *CompositionRoot) CloseStreams() {
	c.broadcaster.Close()
}

// Close drops all viewers, flushes the relays and closes the database.
func (c *CompositionRoot) Close() error {
	c.CloseStreams()

	var errList []error
	for _, relay := range c.relays {
		errList = append(errList, relay.Close())
	}
	if c.gormDB != nil {
		sqlDB, err := c.gormDB.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}
