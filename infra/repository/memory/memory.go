// Package memory provides an in-process UnitOfWork used by the service, HTTP
// and CLI tests. Units of work are serialized and run against a copy of the
// committed state, which replaces it only when the unit succeeds.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/amirasaad/bankaccount/pkg/repository"
	"github.com/google/uuid"
)

type state struct {
	accounts     map[string]account.Account
	transactions []account.Transaction
}

func newState() *state {
	return &state{accounts: make(map[string]account.Account)}
}

func (s *state) clone() *state {
	c := &state{
		accounts:     make(map[string]account.Account, len(s.accounts)),
		transactions: make([]account.Transaction, len(s.transactions)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	copy(c.transactions, s.transactions)
	return c
}

// Store holds committed accounts and transactions.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore creates a store seeded with accounts. Seeded accounts without an
// ID are given one.
func NewStore(accounts ...*account.Account) *Store {
	s := &Store{state: newState()}
	for _, a := range accounts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		s.state.accounts[a.AccountNumber] = *a
	}
	return s
}

// Transactions returns a copy of every committed transaction in insertion order.
func (s *Store) Transactions() []account.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]account.Transaction, len(s.state.transactions))
	copy(out, s.state.transactions)
	return out
}

// UoW implements repository.UnitOfWork over a Store.
type UoW struct {
	store *Store
	work  *state
}

// NewUoW creates a UnitOfWork backed by store.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn against a private copy of the store and commits it if fn succeeds.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	work := u.store.state.clone()
	if err := fn(&UoW{store: u.store, work: work}); err != nil {
		return err
	}
	u.store.state = work
	return nil
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{view: u.view}, nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepository{view: u.view}, nil
}

// view hands fn the working copy inside Do, or the committed state under
// the store lock outside it.
func (u *UoW) view(fn func(*state) error) error {
	if u.work != nil {
		return fn(u.work)
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(u.store.state)
}

type accountRepository struct {
	view func(func(*state) error) error
}

func (r *accountRepository) FindAll(ctx context.Context) ([]*account.Account, error) {
	var out []*account.Account
	err := r.view(func(s *state) error {
		out = make([]*account.Account, 0, len(s.accounts))
		for _, a := range s.accounts {
			out = append(out, &a)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, err
}

func (r *accountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	var found *account.Account
	err := r.view(func(s *state) error {
		a, ok := s.accounts[accountNumber]
		if !ok {
			return account.NewAccountNotFound(accountNumber)
		}
		found = &a
		return nil
	})
	return found, err
}

// FindByAccountNumberForUpdate needs no extra locking: units of work are serialized.
func (r *accountRepository) FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*account.Account, error) {
	return r.FindByAccountNumber(ctx, accountNumber)
}

func (r *accountRepository) Save(ctx context.Context, a *account.Account) error {
	return r.view(func(s *state) error {
		now := time.Now().UTC()
		existing, ok := s.accounts[a.AccountNumber]
		switch {
		case !a.IsPersisted() && ok:
			return account.ErrAccountAlreadyExists
		case !a.IsPersisted():
			a.ID = uuid.New()
			if a.CreatedAt.IsZero() {
				a.CreatedAt = now
			}
		case !ok || existing.ID != a.ID:
			return account.NewAccountNotFound(a.AccountNumber)
		}
		a.UpdatedAt = now
		s.accounts[a.AccountNumber] = *a
		return nil
	})
}

type transactionRepository struct {
	view func(func(*state) error) error
}

func (r *transactionRepository) Append(ctx context.Context, tx *account.Transaction) error {
	return r.view(func(s *state) error {
		if tx.ID == uuid.Nil {
			tx.ID = uuid.New()
		}
		s.transactions = append(s.transactions, *tx)
		return nil
	})
}

func (r *transactionRepository) FindByAccountNumberSince(
	ctx context.Context,
	accountNumber string,
	since time.Time,
) ([]*account.Transaction, error) {
	var out []*account.Transaction
	err := r.view(func(s *state) error {
		out = make([]*account.Transaction, 0)
		for _, tx := range s.transactions {
			if tx.AccountNumber == accountNumber && tx.Timestamp.After(since) {
				out = append(out, &tx)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, err
}
