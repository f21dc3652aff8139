// Package initializer builds the runtime dependencies shared by the server
// and the CLI from configuration.
package initializer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/amirasaad/bankaccount/infra"
	"github.com/amirasaad/bankaccount/infra/cache"
	infra_eventbus "github.com/amirasaad/bankaccount/infra/eventbus"
	"github.com/amirasaad/bankaccount/infra/migrate"
	infra_repository "github.com/amirasaad/bankaccount/infra/repository"
	"github.com/amirasaad/bankaccount/pkg/config"
	"github.com/amirasaad/bankaccount/pkg/domain/events"
	"github.com/amirasaad/bankaccount/pkg/eventbus"
	"github.com/amirasaad/bankaccount/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

type options struct {
	logOutput io.Writer
}

// Option customizes InitializeDependencies.
type Option func(*options)

// WithLogOutput sends application logs to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// Dependencies are the initialized dependencies plus the resources that
// must be released on shutdown.
type Dependencies struct {
	*config.Deps
	closers []io.Closer
}

// Close releases every resource opened by InitializeDependencies.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App, opts ...Option) (deps *Dependencies, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := setupLogger(cfg.Log, o.logOutput)
	deps = &Dependencies{Deps: &config.Deps{
		Logger:  logger,
		Config:  cfg,
		Metrics: metrics.NewLedger(),
	}}
	defer func() {
		if err != nil {
			_ = deps.Close()
			deps = nil
		}
	}()

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return deps, err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		deps.closers = append(deps.closers, sqlDB)
	}
	if cfg.DB.AutoMigrate {
		if err = migrate.Up(db, logger); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			return deps, err
		}
	}

	// Initialize unit of work
	deps.Uow = infra_repository.NewUoW(db)

	// Initialize event bus
	bus, publisher, err := initEventBus(cfg, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	if publisher != nil {
		deps.closers = append(deps.closers, publisher)
	}
	deps.EventBus = bus
	return deps, nil
}

// initEventBus returns the in-memory bus; when Kafka brokers are configured
// every ledger event is also forwarded to the configured topic.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, *infra_eventbus.KafkaPublisher, error) {
	bus := eventbus.NewMemoryBus(logger)
	if cfg.Kafka == nil || len(cfg.Kafka.Brokers) == 0 {
		logger.Info("Kafka not configured; events stay in process")
		return bus, nil, nil
	}
	publisher, err := infra_eventbus.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	if err != nil {
		return nil, nil, err
	}
	publisher.Subscribe(bus,
		events.EventTypeAccountOpened.String(),
		events.EventTypeTransactionRecorded.String(),
		events.EventTypeOverdraftLimitChanged.String(),
	)
	return bus, publisher, nil
}

// NewLimiterStorage returns Redis-backed storage for the HTTP rate limiter,
// or nil when no Redis URL is configured.
func NewLimiterStorage(cfg *config.Redis, logger *slog.Logger) (fiber.Storage, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, nil
	}
	storage, err := cache.NewRedisStorage(cfg.URL, cfg.KeyPrefix+"limiter:", logger)
	if err != nil {
		return nil, err
	}
	return storage, nil
}
