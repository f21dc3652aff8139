package repository

import (
	"context"
	"time"

	"github.com/amirasaad/bankaccount/pkg/domain/account"
)

// AccountRepository defines the interface for account data access operations.
type AccountRepository interface {
	// FindAll returns every account ordered by account number.
	FindAll(ctx context.Context) ([]*account.Account, error)
	// FindByAccountNumber returns an error matching account.ErrAccountNotFound
	// when no account carries the number.
	FindByAccountNumber(ctx context.Context, accountNumber string) (*account.Account, error)
	// FindByAccountNumberForUpdate is FindByAccountNumber with the row locked
	// until the surrounding unit of work ends.
	FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*account.Account, error)
	// Save inserts a when it has no ID yet (assigning one) and updates it otherwise.
	Save(ctx context.Context, a *account.Account) error
}

// TransactionRepository defines the interface for transaction data access operations.
type TransactionRepository interface {
	Append(ctx context.Context, tx *account.Transaction) error
	// FindByAccountNumberSince lists entries strictly newer than since, newest first.
	FindByAccountNumberSince(ctx context.Context, accountNumber string, since time.Time) ([]*account.Transaction, error)
}
