package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a bank account record in the database.
type Account struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountNumber       string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Balance             decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	OverdraftLimit      decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	SavingsBalance      decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	SavingsDepositLimit decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "bank_accounts"
}

// Transaction represents a persisted ledger entry.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountNumber string          `gorm:"type:varchar(64);not null;index:idx_transactions_account_created,priority:1"`
	Kind          string          `gorm:"type:varchar(32);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	CreatedAt     time.Time       `gorm:"not null;index:idx_transactions_account_created,priority:2,sort:desc"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
