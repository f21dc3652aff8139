// Package app wires the ledger service and its event handlers from a set of
// infrastructure dependencies.
package app

import (
	"github.com/amirasaad/bankaccount/pkg/config"
	"github.com/amirasaad/bankaccount/pkg/service/ledger"
)

type App struct {
	Deps          *config.Deps
	Config        *config.App
	LedgerService *ledger.Service
}

func New(deps *config.Deps) *App {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.App{}
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	ledgerDeps := ledger.Deps{
		Uow:      deps.Uow,
		Logger:   deps.Logger,
		EventBus: deps.EventBus,
		Metrics:  deps.Metrics,
	}
	if cfg.Ledger != nil {
		ledgerDeps.StatementWindow = cfg.Ledger.StatementWindow
		ledgerDeps.DefaultSavingsDepositLimit = cfg.Ledger.DefaultSavingsDepositLimit
	}
	app.LedgerService = ledger.New(ledgerDeps)
	return app
}
