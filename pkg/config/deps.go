package config

import (
	"log/slog"

	"github.com/amirasaad/bankaccount/pkg/eventbus"
	"github.com/amirasaad/bankaccount/pkg/metrics"
	"github.com/amirasaad/bankaccount/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Metrics  *metrics.Ledger
	Logger   *slog.Logger
	Config   *App
}
