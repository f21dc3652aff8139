package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// SavingsOnlyPrefix marks an account number as savings-only. Matched case-insensitively.
	SavingsOnlyPrefix = "SAV-"

	// DefaultSavingsDepositLimitValue is the regulated ceiling on a savings balance.
	DefaultSavingsDepositLimitValue = 22950
)

var (
	// MaxOverdraftLimit is the highest overdraft an account may be granted.
	MaxOverdraftLimit = decimal.NewFromInt(300)

	// DefaultSavingsDepositLimit is the savings cap applied to new accounts.
	DefaultSavingsDepositLimit = decimal.NewFromInt(DefaultSavingsDepositLimitValue)
)

// Account is a bank account holding a current balance and a savings sub-balance.
//
// Invariants (after any committed operation):
//   - Balance >= -OverdraftLimit
//   - 0 <= SavingsBalance <= SavingsDepositLimit
//   - savings-only accounts (number prefixed "SAV-") have OverdraftLimit == 0
//
// ID is assigned by storage on first save and is uuid.Nil before that.
type Account struct {
	ID                  uuid.UUID
	AccountNumber       string
	Balance             decimal.Decimal
	OverdraftLimit      decimal.Decimal
	SavingsBalance      decimal.Decimal
	SavingsDepositLimit decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id                  uuid.UUID
	accountNumber       string
	balance             decimal.Decimal
	overdraftLimit      decimal.Decimal
	savingsBalance      decimal.Decimal
	savingsDepositLimit decimal.Decimal
	createdAt           time.Time
	updatedAt           time.Time
}

// New creates a new Builder with zero balances and the default savings cap.
func New() *Builder {
	return &Builder{
		savingsDepositLimit: DefaultSavingsDepositLimit,
	}
}

// WithID sets the storage identifier. Only used when hydrating from a data store.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithAccountNumber sets the account number. This is a mandatory field.
func (b *Builder) WithAccountNumber(number string) *Builder {
	b.accountNumber = number
	return b
}

// WithBalance sets the current balance.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithOverdraftLimit sets the overdraft limit.
func (b *Builder) WithOverdraftLimit(limit decimal.Decimal) *Builder {
	b.overdraftLimit = limit
	return b
}

// WithSavingsBalance sets the savings balance.
func (b *Builder) WithSavingsBalance(balance decimal.Decimal) *Builder {
	b.savingsBalance = balance
	return b
}

// WithSavingsDepositLimit overrides the default savings cap.
func (b *Builder) WithSavingsDepositLimit(limit decimal.Decimal) *Builder {
	b.savingsDepositLimit = limit
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the account invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	number := strings.TrimSpace(b.accountNumber)
	if number == "" {
		return nil, ErrAccountNumberRequired
	}
	if b.overdraftLimit.IsNegative() || b.overdraftLimit.GreaterThan(MaxOverdraftLimit) {
		return nil, &InvalidOverdraftLimitError{Limit: b.overdraftLimit}
	}
	if isSavingsOnlyNumber(number) && !b.overdraftLimit.IsZero() {
		return nil, ErrSavingsOverdraftNotAllowed
	}
	if b.savingsDepositLimit.IsNegative() {
		return nil, fmt.Errorf("%w: savings deposit limit is negative", ErrInvalidAccountState)
	}
	if b.savingsBalance.IsNegative() || b.savingsBalance.GreaterThan(b.savingsDepositLimit) {
		return nil, fmt.Errorf("%w: savings balance outside [0, %s]", ErrInvalidAccountState, b.savingsDepositLimit)
	}
	if b.balance.LessThan(b.overdraftLimit.Neg()) {
		return nil, fmt.Errorf("%w: balance %s below overdraft limit %s", ErrInvalidAccountState, b.balance, b.overdraftLimit)
	}
	return &Account{
		ID:                  b.id,
		AccountNumber:       number,
		Balance:             b.balance,
		OverdraftLimit:      b.overdraftLimit,
		SavingsBalance:      b.savingsBalance,
		SavingsDepositLimit: b.savingsDepositLimit,
		CreatedAt:           b.createdAt,
		UpdatedAt:           b.updatedAt,
	}, nil
}

// IsPersisted reports whether storage has assigned an identifier.
func (a Account) IsPersisted() bool {
	return a.ID != uuid.Nil
}
