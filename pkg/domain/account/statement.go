package account

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StatementWindow is how far back a statement looks.
const StatementWindow = 30 * 24 * time.Hour

// Type is the derived account type shown on a statement.
type Type string

// Account types. Display labels are a transport concern.
const (
	TypeCurrent           Type = "CURRENT"
	TypeSavings           Type = "SAVINGS"
	TypeCurrentAndSavings Type = "CURRENT_AND_SAVINGS"
)

// Statement is a point-in-time view of an account and its recent ledger entries.
type Statement struct {
	AccountNumber  string
	AccountType    Type
	CurrentBalance decimal.Decimal
	SavingsBalance decimal.Decimal
	StatementDate  time.Time
	Transactions   []*Transaction
}

// StatementSince returns the exclusive lower bound of the statement window ending at now.
func StatementSince(now time.Time, window time.Duration) time.Time {
	return now.Add(-window)
}

// NewStatement assembles a statement for a. Only transactions strictly newer
// than since are kept, ordered newest first.
func NewStatement(a Account, txs []*Transaction, since, now time.Time) *Statement {
	kept := make([]*Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx != nil && tx.Timestamp.After(since) {
			kept = append(kept, tx)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.After(kept[j].Timestamp)
	})
	return &Statement{
		AccountNumber:  a.AccountNumber,
		AccountType:    AccountType(a),
		CurrentBalance: a.Balance,
		SavingsBalance: a.SavingsBalance,
		StatementDate:  now,
		Transactions:   kept,
	}
}
