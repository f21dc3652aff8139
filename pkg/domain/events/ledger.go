package events

import (
	"time"

	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRecordedEvent is emitted after a ledger entry has been committed.
type TransactionRecordedEvent struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	AccountNumber string          `json:"accountNumber"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

func (e TransactionRecordedEvent) Type() string {
	return EventTypeTransactionRecorded.String()
}

// NewTransactionRecorded builds the event for a committed transaction.
func NewTransactionRecorded(tx *account.Transaction) TransactionRecordedEvent {
	return TransactionRecordedEvent{
		TransactionID: tx.ID,
		AccountNumber: tx.AccountNumber,
		Kind:          tx.Kind.String(),
		Amount:        tx.Amount,
		BalanceAfter:  tx.BalanceAfter,
		OccurredAt:    tx.Timestamp,
	}
}

// AccountOpenedEvent is emitted after a new account has been committed.
type AccountOpenedEvent struct {
	AccountID     uuid.UUID `json:"accountId"`
	AccountNumber string    `json:"accountNumber"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (e AccountOpenedEvent) Type() string {
	return EventTypeAccountOpened.String()
}

// OverdraftLimitChangedEvent is emitted after an overdraft limit update has been committed.
type OverdraftLimitChangedEvent struct {
	AccountNumber  string          `json:"accountNumber"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

func (e OverdraftLimitChangedEvent) Type() string {
	return EventTypeOverdraftLimitChanged.String()
}

func (e TransactionRecordedEvent) GetAccountNumber() string { return e.AccountNumber }
func (e AccountOpenedEvent) GetAccountNumber() string { return e.AccountNumber }
func (e OverdraftLimitChangedEvent) GetAccountNumber() string { return e.AccountNumber }
