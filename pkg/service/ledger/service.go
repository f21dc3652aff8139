// Package ledger implements the bank account operations: opening accounts,
// cash deposits and withdrawals, overdraft management, savings deposits and
// statements. Every mutation runs in one unit of work that loads the account
// with a row lock, applies the account rules, saves the account and appends
// the ledger entry. Domain events are emitted only after commit.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/amirasaad/bankaccount/pkg/domain/events"
	"github.com/amirasaad/bankaccount/pkg/eventbus"
	"github.com/amirasaad/bankaccount/pkg/metrics"
	"github.com/amirasaad/bankaccount/pkg/repository"
	"github.com/shopspring/decimal"
)

// Operation names used in logs and metrics.
const (
	OpOpenAccount       = "open_account"
	OpDeposit           = "deposit"
	OpWithdraw          = "withdraw"
	OpSetOverdraftLimit = "set_overdraft_limit"
	OpDepositToSavings  = "deposit_to_savings"
	OpGetAllAccounts    = "get_all_accounts"
	OpGetStatement      = "get_statement"
)

// Deps holds the collaborators of a Service. Uow is required; the rest
// fall back to defaults when left zero.
type Deps struct {
	Uow      repository.UnitOfWork
	Logger   *slog.Logger
	EventBus eventbus.Bus
	Metrics  *metrics.Ledger
	Clock    func() time.Time

	StatementWindow            time.Duration
	DefaultSavingsDepositLimit decimal.Decimal
}

// Service provides the ledger operations.
type Service struct {
	uow          repository.UnitOfWork
	logger       *slog.Logger
	bus          eventbus.Bus
	metrics      *metrics.Ledger
	now          func() time.Time
	window       time.Duration
	savingsLimit decimal.Decimal
}

// New creates a Service from deps.
func New(deps Deps) *Service {
	s := &Service{
		uow:          deps.Uow,
		logger:       deps.Logger,
		bus:          deps.EventBus,
		metrics:      deps.Metrics,
		now:          deps.Clock,
		window:       deps.StatementWindow,
		savingsLimit: deps.DefaultSavingsDepositLimit,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.window <= 0 {
		s.window = account.StatementWindow
	}
	if !s.savingsLimit.IsPositive() {
		s.savingsLimit = account.DefaultSavingsDepositLimit
	}
	return s
}

// OpenAccount creates an account with zero balances, no overdraft and the
// default savings cap.
func (s *Service) OpenAccount(ctx context.Context, accountNumber string) (acct *account.Account, err error) {
	logger := s.logger.With("accountNumber", accountNumber)
	logger.Info("OpenAccount started")
	start := time.Now()
	defer func() { s.observe(OpOpenAccount, start, err) }()

	now := s.now()
	acct, err = account.New().
		WithAccountNumber(accountNumber).
		WithSavingsDepositLimit(s.savingsLimit).
		WithCreatedAt(now).
		Build()
	if err != nil {
		logger.Warn("OpenAccount failed: invalid account", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		_, err = repo.FindByAccountNumber(ctx, acct.AccountNumber)
		switch {
		case err == nil:
			return account.ErrAccountAlreadyExists
		case !errors.Is(err, account.ErrAccountNotFound):
			return err
		}
		return repo.Save(ctx, acct)
	})
	if err != nil {
		logger.Error("OpenAccount failed", "error", err)
		return nil, err
	}

	s.emit(ctx, events.AccountOpenedEvent{
		AccountID:     acct.ID,
		AccountNumber: acct.AccountNumber,
		OccurredAt:    now,
	})
	logger.Info("OpenAccount successful", "accountID", acct.ID)
	return acct, nil
}

// Deposit credits amount to the current balance.
func (s *Service) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*account.Account, error) {
	return s.mutate(ctx, OpDeposit, accountNumber, amount,
		func(a account.Account, now time.Time) (account.Account, *account.Transaction, error) {
			a = account.Deposit(a, amount)
			return a, account.NewDepositTransaction(a.AccountNumber, amount, a.Balance, now), nil
		})
}

// Withdraw debits amount from the current balance, allowing it to go down
// to minus the overdraft limit.
func (s *Service) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*account.Account, error) {
	return s.mutate(ctx, OpWithdraw, accountNumber, amount,
		func(a account.Account, now time.Time) (account.Account, *account.Transaction, error) {
			a, err := account.Withdraw(a, amount)
			if err != nil {
				return a, nil, err
			}
			return a, account.NewWithdrawalTransaction(a.AccountNumber, amount, a.Balance, now), nil
		})
}

// SetOverdraftLimit replaces the overdraft limit. No ledger entry is recorded.
func (s *Service) SetOverdraftLimit(ctx context.Context, accountNumber string, limit decimal.Decimal) (*account.Account, error) {
	acct, err := s.mutate(ctx, OpSetOverdraftLimit, accountNumber, limit,
		func(a account.Account, _ time.Time) (account.Account, *account.Transaction, error) {
			a, err := account.SetOverdraft(a, limit)
			return a, nil, err
		})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.OverdraftLimitChangedEvent{
		AccountNumber:  acct.AccountNumber,
		OverdraftLimit: acct.OverdraftLimit,
		OccurredAt:     acct.UpdatedAt,
	})
	return acct, nil
}

// DepositToSavings credits the savings balance with as much of amount as
// fits under the savings cap. The ledger entry records the amount actually
// deposited.
func (s *Service) DepositToSavings(ctx context.Context, accountNumber string, amount decimal.Decimal) (*account.Account, error) {
	return s.mutate(ctx, OpDepositToSavings, accountNumber, amount,
		func(a account.Account, now time.Time) (account.Account, *account.Transaction, error) {
			a, deposited, err := account.DepositToSavings(a, amount)
			if err != nil {
				return a, nil, err
			}
			return a, account.NewSavingsDepositTransaction(a.AccountNumber, deposited, a.SavingsBalance, now), nil
		})
}

// GetAllAccounts lists every account.
func (s *Service) GetAllAccounts(ctx context.Context) (accounts []*account.Account, err error) {
	start := time.Now()
	defer func() { s.observe(OpGetAllAccounts, start, err) }()

	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	accounts, err = repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("GetAllAccounts failed", "error", err)
		return nil, err
	}
	return accounts, nil
}

// GetStatement returns the account with its ledger entries from the last
// statement window, newest first.
func (s *Service) GetStatement(ctx context.Context, accountNumber string) (st *account.Statement, err error) {
	logger := s.logger.With("accountNumber", accountNumber)
	start := time.Now()
	defer func() { s.observe(OpGetStatement, start, err) }()

	now := s.now()
	since := account.StatementSince(now, s.window)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.FindByAccountNumber(ctx, accountNumber)
		if err != nil {
			return err
		}
		txs, err := txRepo.FindByAccountNumberSince(ctx, acct.AccountNumber, since)
		if err != nil {
			return err
		}
		st = account.NewStatement(*acct, txs, since, now)
		return nil
	})
	if err != nil {
		if isRejection(err) {
			logger.Warn("GetStatement rejected", "error", err)
		} else {
			logger.Error("GetStatement failed", "error", err)
		}
		return nil, err
	}
	return st, nil
}

type mutation func(a account.Account, now time.Time) (account.Account, *account.Transaction, error)

func (s *Service) mutate(
	ctx context.Context,
	op, accountNumber string,
	amount decimal.Decimal,
	apply mutation,
) (acct *account.Account, err error) {
	logger := s.logger.With("op", op, "accountNumber", accountNumber, "amount", amount.String())
	logger.Info("Operation started")
	start := time.Now()
	defer func() { s.observe(op, start, err) }()

	if op != OpSetOverdraftLimit && !amount.IsPositive() {
		logger.Warn("Operation failed: non-positive amount")
		return nil, account.ErrAmountMustBePositive
	}
	if !account.FitsMoneyScale(amount) {
		logger.Warn("Operation failed: amount precision", "scale", account.MoneyScale)
		return nil, account.ErrAmountPrecision
	}

	var recorded *account.Transaction
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		current, err := accounts.FindByAccountNumberForUpdate(ctx, accountNumber)
		if err != nil {
			return err
		}
		updated, tx, err := apply(*current, s.now())
		if err != nil {
			return err
		}
		if err := accounts.Save(ctx, &updated); err != nil {
			return err
		}
		if tx != nil {
			if err := txRepo.Append(ctx, tx); err != nil {
				return err
			}
		}
		acct, recorded = &updated, tx
		return nil
	})
	if err != nil {
		if isRejection(err) {
			logger.Warn("Operation rejected", "error", err)
		} else {
			logger.Error("Operation failed", "error", err)
		}
		return nil, err
	}

	if recorded != nil {
		s.emit(ctx, events.NewTransactionRecorded(recorded))
	}
	logger.Info("Operation successful", "balance", acct.Balance.String(), "savingsBalance", acct.SavingsBalance.String())
	return acct, nil
}

// emit publishes evt; a failure is logged and never undoes the committed work.
func (s *Service) emit(ctx context.Context, evt eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Warn("event publish failed", "type", evt.Type(), "error", err)
	}
}

func (s *Service) observe(op string, start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case isRejection(err):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveOperation(op, outcome, time.Since(start))
}

// isRejection reports whether err is a business rule rejection as opposed
// to an infrastructure failure.
func isRejection(err error) bool {
	for _, target := range []error{
		account.ErrAccountNotFound,
		account.ErrAccountAlreadyExists,
		account.ErrAccountNumberRequired,
		account.ErrInsufficientBalance,
		account.ErrInvalidOverdraftLimit,
		account.ErrSavingsOverdraftNotAllowed,
		account.ErrSavingsAtCapacity,
		account.ErrAmountMustBePositive,
		account.ErrAmountPrecision,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
