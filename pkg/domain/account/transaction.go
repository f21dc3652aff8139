package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind identifies which operation produced a ledger entry.
type TransactionKind string

// Transaction kinds. The string values are what gets persisted.
const (
	KindDepositCurrent TransactionKind = "DEPOSIT_CURRENT"
	KindWithdrawal     TransactionKind = "WITHDRAWAL"
	KindDepositSavings TransactionKind = "DEPOSIT_SAVINGS"
)

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDepositCurrent, KindWithdrawal, KindDepositSavings:
		return true
	}
	return false
}

func (k TransactionKind) String() string {
	return string(k)
}

// Transaction is one immutable ledger entry. Amount is negative for
// withdrawals. BalanceAfter is the balance of the affected sub-account
// (current or savings) right after the operation.
type Transaction struct {
	ID            uuid.UUID
	AccountNumber string
	Timestamp     time.Time
	Kind          TransactionKind
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// NewDepositTransaction records a current-account deposit.
func NewDepositTransaction(accountNumber string, amount, balanceAfter decimal.Decimal, at time.Time) *Transaction {
	return newTransaction(accountNumber, KindDepositCurrent, amount, balanceAfter, at)
}

// NewWithdrawalTransaction records a withdrawal. amount is the positive
// requested amount; it is stored negated.
func NewWithdrawalTransaction(accountNumber string, amount, balanceAfter decimal.Decimal, at time.Time) *Transaction {
	return newTransaction(accountNumber, KindWithdrawal, amount.Neg(), balanceAfter, at)
}

// NewSavingsDepositTransaction records a savings deposit of the amount actually deposited.
func NewSavingsDepositTransaction(accountNumber string, deposited, savingsAfter decimal.Decimal, at time.Time) *Transaction {
	return newTransaction(accountNumber, KindDepositSavings, deposited, savingsAfter, at)
}

func newTransaction(
	accountNumber string,
	kind TransactionKind,
	amount, balanceAfter decimal.Decimal,
	at time.Time,
) *Transaction {
	return &Transaction{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Timestamp:     at,
		Kind:          kind,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
	}
}

// NewTransactionFromData creates a Transaction from raw data (used for DB hydration or test fixtures).
func NewTransactionFromData(
	id uuid.UUID,
	accountNumber string,
	timestamp time.Time,
	kind TransactionKind,
	amount, balanceAfter decimal.Decimal,
) *Transaction {
	return &Transaction{
		ID:            id,
		AccountNumber: accountNumber,
		Timestamp:     timestamp,
		Kind:          kind,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
	}
}
