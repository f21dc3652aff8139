package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs fn inside one transaction. Repositories obtained from the UnitOfWork
// handed to fn share that transaction, so every write made through them is
// committed together or rolled back together when fn returns an error.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
