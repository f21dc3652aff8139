package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/bankaccount/pkg/domain/events"
	"github.com/amirasaad/bankaccount/pkg/eventbus"
)

// setupEventBus registers the in-process handlers every deployment gets.
// Transport handlers such as the Kafka publisher are attached by the caller.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	audit := AuditHandler(logger.With("handler", "audit"))
	for _, t := range []events.EventType{
		events.EventTypeAccountOpened,
		events.EventTypeTransactionRecorded,
		events.EventTypeOverdraftLimitChanged,
	} {
		bus.Register(t.String(), audit)
	}
}

type accountEvent interface {
	GetAccountNumber() string
}

// AuditHandler logs every ledger event it receives.
func AuditHandler(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e eventbus.Event) error {
		attrs := []any{"type", e.Type()}
		if ae, ok := e.(accountEvent); ok {
			attrs = append(attrs, "accountNumber", ae.GetAccountNumber())
		}
		if tr, ok := e.(events.TransactionRecordedEvent); ok {
			attrs = append(attrs,
				"kind", tr.Kind,
				"amount", tr.Amount.String(),
				"balanceAfter", tr.BalanceAfter.String(),
			)
		}
		logger.InfoContext(ctx, "📒 ledger event", attrs...)
		return nil
	}
}
