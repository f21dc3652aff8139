package account

import (
	"strings"

	"github.com/shopspring/decimal"
)

// The functions in this file are the account rules. They take an Account by
// value and return the updated copy, so a failed operation never leaves a
// partially mutated account behind. Amounts are assumed strictly positive;
// callers reject anything else before reaching here.

// MoneyScale is the number of decimal places stored for every balance,
// limit and ledger amount.
const MoneyScale int32 = 2

// FitsMoneyScale reports whether d is representable at MoneyScale without
// rounding. Trailing zeros are fine: 1.500 fits, 0.004 does not.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

// CanWithdraw reports whether amount can be taken from the current balance
// without going below -OverdraftLimit.
func CanWithdraw(a Account, amount decimal.Decimal) bool {
	return a.Balance.Sub(amount).GreaterThanOrEqual(a.OverdraftLimit.Neg())
}

// Withdraw debits the current balance.
func Withdraw(a Account, amount decimal.Decimal) (Account, error) {
	if !CanWithdraw(a, amount) {
		return a, &InsufficientBalanceError{Available: a.Balance, Requested: amount}
	}
	a.Balance = a.Balance.Sub(amount)
	return a, nil
}

// Deposit credits the current balance. There is no upper bound.
func Deposit(a Account, amount decimal.Decimal) Account {
	a.Balance = a.Balance.Add(amount)
	return a
}

// IsSavingsOnly reports whether the account number carries the SAV- prefix.
func IsSavingsOnly(a Account) bool {
	return isSavingsOnlyNumber(a.AccountNumber)
}

func isSavingsOnlyNumber(number string) bool {
	return strings.HasPrefix(strings.ToUpper(number), SavingsOnlyPrefix)
}

// SetOverdraft sets the overdraft limit. The range check runs before the
// savings-only check, so an out-of-range limit on a savings account reports
// InvalidOverdraftLimitError.
func SetOverdraft(a Account, limit decimal.Decimal) (Account, error) {
	if limit.IsNegative() || limit.GreaterThan(MaxOverdraftLimit) {
		return a, &InvalidOverdraftLimitError{Limit: limit}
	}
	if IsSavingsOnly(a) {
		return a, ErrSavingsOverdraftNotAllowed
	}
	a.OverdraftLimit = limit
	return a, nil
}

// AvailableSavingsSpace is how much more the savings balance can take.
func AvailableSavingsSpace(a Account) decimal.Decimal {
	return a.SavingsDepositLimit.Sub(a.SavingsBalance)
}

// DepositToSavings credits the savings balance up to its deposit limit and
// returns the amount actually deposited. A request larger than the remaining
// space is truncated, not rejected.
func DepositToSavings(a Account, amount decimal.Decimal) (Account, decimal.Decimal, error) {
	space := AvailableSavingsSpace(a)
	if !space.IsPositive() {
		return a, decimal.Zero, ErrSavingsAtCapacity
	}
	deposited := decimal.Min(amount, space)
	a.SavingsBalance = a.SavingsBalance.Add(deposited)
	return a, deposited, nil
}

// AccountType derives the account type from the two balances.
func AccountType(a Account) Type {
	hasSavings := a.SavingsBalance.IsPositive()
	hasCurrent := !a.Balance.IsZero()
	switch {
	case hasSavings && hasCurrent:
		return TypeCurrentAndSavings
	case hasSavings:
		return TypeSavings
	default:
		return TypeCurrent
	}
}
