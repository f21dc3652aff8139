package account

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when no account matches the requested account number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists is returned when opening an account whose number is already taken.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountNumberRequired is returned when an account number is empty.
	ErrAccountNumberRequired = errors.New("account number is required")

	// ErrInsufficientBalance is returned when a withdrawal would breach the overdraft limit.
	ErrInsufficientBalance = errors.New("insufficient balance for withdrawal")

	// ErrInvalidOverdraftLimit is returned when an overdraft limit is outside [0, 300].
	ErrInvalidOverdraftLimit = errors.New("overdraft limit must be between 0 and 300")

	// ErrSavingsOverdraftNotAllowed is returned when setting an overdraft on a savings-only account.
	ErrSavingsOverdraftNotAllowed = errors.New("savings accounts cannot have overdraft")

	// ErrSavingsAtCapacity is returned when the savings balance already sits at its deposit limit.
	ErrSavingsAtCapacity = errors.New("savings account is at maximum capacity")

	// ErrAmountMustBePositive is returned when a deposit or withdrawal amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrAmountPrecision is returned when an amount or limit has more decimal places than MoneyScale.
	ErrAmountPrecision = errors.New("amount must have at most 2 decimal places")

	// ErrInvalidAccountState is returned when hydrated or built data violates an account invariant.
	ErrInvalidAccountState = errors.New("invalid account state")
)

// AccountNotFoundError carries the account number that could not be resolved.
type AccountNotFoundError struct {
	AccountNumber string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account not found: %s", e.AccountNumber)
}

// Is makes errors.Is(err, ErrAccountNotFound) hold.
func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// InsufficientBalanceError reports the balance available when a withdrawal was refused.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf(
		"insufficient balance. Available: %s, Requested: %s",
		e.Available.StringFixed(2),
		e.Requested.StringFixed(2),
	)
}

// Is makes errors.Is(err, ErrInsufficientBalance) hold.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// InvalidOverdraftLimitError carries the rejected overdraft limit.
type InvalidOverdraftLimitError struct {
	Limit decimal.Decimal
}

func (e *InvalidOverdraftLimitError) Error() string {
	return fmt.Sprintf("%s: got %s", ErrInvalidOverdraftLimit, e.Limit)
}

// Is makes errors.Is(err, ErrInvalidOverdraftLimit) hold.
func (e *InvalidOverdraftLimitError) Is(target error) bool {
	return target == ErrInvalidOverdraftLimit
}

// NewAccountNotFound returns an *AccountNotFoundError for number.
func NewAccountNotFound(number string) error {
	return &AccountNotFoundError{AccountNumber: number}
}
