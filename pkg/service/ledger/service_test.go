package ledger_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/bankaccount/infra/repository/memory"
	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/amirasaad/bankaccount/pkg/domain/events"
	"github.com/amirasaad/bankaccount/pkg/eventbus"
	"github.com/amirasaad/bankaccount/pkg/metrics"
	"github.com/amirasaad/bankaccount/pkg/repository"
	"github.com/amirasaad/bankaccount/pkg/service/ledger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	store   *memory.Store
	bus     *eventbus.MemoryBus
	metrics *metrics.Ledger
	svc     *ledger.Service
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s.bus = eventbus.NewMemoryBus(discardLogger())
	s.metrics = metrics.NewLedger()
	s.store = memory.NewStore()
	s.svc = s.serviceFor(memory.NewUoW(s.store))
}

func (s *LedgerServiceTestSuite) serviceFor(uow repository.UnitOfWork) *ledger.Service {
	return ledger.New(ledger.Deps{
		Uow:      uow,
		Logger:   discardLogger(),
		EventBus: s.bus,
		Metrics:  s.metrics,
		Clock:    func() time.Time { return s.now },
	})
}

// seed stores an account directly, bypassing the service.
func (s *LedgerServiceTestSuite) seed(b *account.Builder) *account.Account {
	a, err := b.Build()
	s.Require().NoError(err)
	uow := memory.NewUoW(s.store)
	repo, err := uow.AccountRepository()
	s.Require().NoError(err)
	s.Require().NoError(repo.Save(s.ctx, a))
	return a
}

func (s *LedgerServiceTestSuite) find(number string) *account.Account {
	repo, err := memory.NewUoW(s.store).AccountRepository()
	s.Require().NoError(err)
	a, err := repo.FindByAccountNumber(s.ctx, number)
	s.Require().NoError(err)
	return a
}

func (s *LedgerServiceTestSuite) TestOpenAccount() {
	acct, err := s.svc.OpenAccount(s.ctx, "ACC-100")
	s.Require().NoError(err)
	s.True(acct.IsPersisted())
	s.True(acct.Balance.IsZero())
	s.True(acct.OverdraftLimit.IsZero())
	s.True(acct.SavingsDepositLimit.Equal(dec("22950")))

	_, err = s.svc.OpenAccount(s.ctx, "ACC-100")
	s.ErrorIs(err, account.ErrAccountAlreadyExists)

	_, err = s.svc.OpenAccount(s.ctx, "  ")
	s.ErrorIs(err, account.ErrAccountNumberRequired)

	published := s.bus.Published()
	s.Require().Len(published, 1)
	s.Equal(events.EventTypeAccountOpened.String(), published[0].Type())
}

func (s *LedgerServiceTestSuite) TestDeposit() {
	s.seed(account.New().WithAccountNumber("ACC-001").WithBalance(dec("100")))

	acct, err := s.svc.Deposit(s.ctx, "ACC-001", dec("25.50"))
	s.Require().NoError(err)
	s.True(acct.Balance.Equal(dec("125.50")))
	s.True(s.find("ACC-001").Balance.Equal(dec("125.50")))

	txs := s.store.Transactions()
	s.Require().Len(txs, 1)
	s.Equal(account.KindDepositCurrent, txs[0].Kind)
	s.True(txs[0].Amount.Equal(dec("25.50")))
	s.True(txs[0].BalanceAfter.Equal(dec("125.50")))
	s.Equal(s.now, txs[0].Timestamp)
}

// Scenario: ACC-001 balance=100, overdraft=50.
func (s *LedgerServiceTestSuite) TestWithdraw_WithinOverdraft() {
	s.seed(account.New().WithAccountNumber("ACC-001").WithBalance(dec("100")).WithOverdraftLimit(dec("50")))

	acct, err := s.svc.Withdraw(s.ctx, "ACC-001", dec("130"))
	s.Require().NoError(err)
	s.True(acct.Balance.Equal(dec("-30")))

	txs := s.store.Transactions()
	s.Require().Len(txs, 1)
	s.Equal(account.KindWithdrawal, txs[0].Kind)
	s.True(txs[0].Amount.Equal(dec("-130")))
	s.True(txs[0].BalanceAfter.Equal(dec("-30")))
}

func (s *LedgerServiceTestSuite) TestWithdraw_InsufficientBalance() {
	s.seed(account.New().WithAccountNumber("ACC-001").WithBalance(dec("100")).WithOverdraftLimit(dec("50")))

	_, err := s.svc.Withdraw(s.ctx, "ACC-001", dec("200"))
	var ib *account.InsufficientBalanceError
	s.Require().ErrorAs(err, &ib)
	s.True(ib.Available.Equal(dec("100")))
	s.True(ib.Requested.Equal(dec("200")))

	s.True(s.find("ACC-001").Balance.Equal(dec("100")))
	s.Empty(s.store.Transactions())
	s.Empty(s.bus.Published())
}

// Scenario: SAV-001 savings=22900, cap=22950.
func (s *LedgerServiceTestSuite) TestDepositToSavings_PartialFill() {
	s.seed(account.New().WithAccountNumber("SAV-001").WithSavingsBalance(dec("22900")).WithSavingsDepositLimit(dec("22950")))

	acct, err := s.svc.DepositToSavings(s.ctx, "SAV-001", dec("100"))
	s.Require().NoError(err)
	s.True(acct.SavingsBalance.Equal(dec("22950")))

	txs := s.store.Transactions()
	s.Require().Len(txs, 1)
	s.Equal(account.KindDepositSavings, txs[0].Kind)
	s.True(txs[0].Amount.Equal(dec("50")), "records the amount actually deposited")
	s.True(txs[0].BalanceAfter.Equal(dec("22950")))

	_, err = s.svc.DepositToSavings(s.ctx, "SAV-001", dec("1"))
	s.ErrorIs(err, account.ErrSavingsAtCapacity)
	s.Len(s.store.Transactions(), 1)
}

// Scenario: SAV-001 can never get an overdraft.
func (s *LedgerServiceTestSuite) TestSetOverdraftLimit() {
	s.seed(account.New().WithAccountNumber("SAV-001").WithBalance(dec("10")))
	s.seed(account.New().WithAccountNumber("ACC-001"))

	_, err := s.svc.SetOverdraftLimit(s.ctx, "SAV-001", dec("100"))
	s.ErrorIs(err, account.ErrSavingsOverdraftNotAllowed)

	_, err = s.svc.SetOverdraftLimit(s.ctx, "ACC-001", dec("300.01"))
	s.ErrorIs(err, account.ErrInvalidOverdraftLimit)

	acct, err := s.svc.SetOverdraftLimit(s.ctx, "ACC-001", dec("300"))
	s.Require().NoError(err)
	s.True(acct.OverdraftLimit.Equal(dec("300")))
	s.True(s.find("ACC-001").OverdraftLimit.Equal(dec("300")))
	s.Empty(s.store.Transactions(), "overdraft changes are not ledger entries")

	published := s.bus.Published()
	s.Require().Len(published, 1)
	s.Equal(events.EventTypeOverdraftLimitChanged.String(), published[0].Type())
}

// Scenario: ACC-002 account type transitions.
func (s *LedgerServiceTestSuite) TestAccountTypeTransitions() {
	_, err := s.svc.OpenAccount(s.ctx, "ACC-002")
	s.Require().NoError(err)

	st, err := s.svc.GetStatement(s.ctx, "ACC-002")
	s.Require().NoError(err)
	s.Equal(account.TypeCurrent, st.AccountType)

	_, err = s.svc.DepositToSavings(s.ctx, "ACC-002", dec("500"))
	s.Require().NoError(err)
	st, err = s.svc.GetStatement(s.ctx, "ACC-002")
	s.Require().NoError(err)
	s.Equal(account.TypeSavings, st.AccountType)

	_, err = s.svc.Deposit(s.ctx, "ACC-002", dec("10"))
	s.Require().NoError(err)
	st, err = s.svc.GetStatement(s.ctx, "ACC-002")
	s.Require().NoError(err)
	s.Equal(account.TypeCurrentAndSavings, st.AccountType)
	s.Len(st.Transactions, 2)
}

// Scenario: every operation on an unknown number fails with its number.
func (s *LedgerServiceTestSuite) TestUnknownAccount() {
	ops := []struct {
		name string
		call func() error
	}{
		{"deposit", func() error {
			_, err := s.svc.Deposit(s.ctx, "UNKNOWN", dec("1"))
			return err
		}},
		{"withdraw", func() error {
			_, err := s.svc.Withdraw(s.ctx, "UNKNOWN", dec("1"))
			return err
		}},
		{"overdraft", func() error {
			_, err := s.svc.SetOverdraftLimit(s.ctx, "UNKNOWN", dec("10"))
			return err
		}},
		{"savings", func() error {
			_, err := s.svc.DepositToSavings(s.ctx, "UNKNOWN", dec("1"))
			return err
		}},
		{"statement", func() error {
			_, err := s.svc.GetStatement(s.ctx, "UNKNOWN")
			return err
		}},
	}
	for _, op := range ops {
		s.Run(op.name, func() {
			err := op.call()
			var notFound *account.AccountNotFoundError
			s.Require().ErrorAs(err, &notFound)
			s.Equal("UNKNOWN", notFound.AccountNumber)
			s.ErrorIs(err, account.ErrAccountNotFound)
		})
	}
	s.Empty(s.store.Transactions())
}

func (s *LedgerServiceTestSuite) TestNonPositiveAmountsRejected() {
	s.seed(account.New().WithAccountNumber("ACC-001").WithBalance(dec("100")))
	for _, amount := range []string{"0", "-5"} {
		_, err := s.svc.Deposit(s.ctx, "ACC-001", dec(amount))
		s.ErrorIs(err, account.ErrAmountMustBePositive)
		_, err = s.svc.Withdraw(s.ctx, "ACC-001", dec(amount))
		s.ErrorIs(err, account.ErrAmountMustBePositive)
		_, err = s.svc.DepositToSavings(s.ctx, "ACC-001", dec(amount))
		s.ErrorIs(err, account.ErrAmountMustBePositive)
	}
	_, err := s.svc.Deposit(s.ctx, "UNKNOWN", dec("0"))
	s.ErrorIs(err, account.ErrAmountMustBePositive, "amount is checked before storage")
	s.True(s.find("ACC-001").Balance.Equal(dec("100")))
}

func (s *LedgerServiceTestSuite) TestSubCentAmountsRejected() {
	s.seed(account.New().WithAccountNumber("ACC-001").WithBalance(dec("100")))
	for _, amount := range []string{"0.004", "10.001", "0.0001"} {
		_, err := s.svc.Deposit(s.ctx, "ACC-001", dec(amount))
		s.ErrorIs(err, account.ErrAmountPrecision, "amount=%s", amount)
		_, err = s.svc.Withdraw(s.ctx, "ACC-001", dec(amount))
		s.ErrorIs(err, account.ErrAmountPrecision, "amount=%s", amount)
		_, err = s.svc.DepositToSavings(s.ctx, "ACC-001", dec(amount))
		s.ErrorIs(err, account.ErrAmountPrecision, "amount=%s", amount)
		_, err = s.svc.SetOverdraftLimit(s.ctx, "ACC-001", dec(amount))
		s.ErrorIs(err, account.ErrAmountPrecision, "amount=%s", amount)
	}
	s.True(s.find("ACC-001").Balance.Equal(dec("100")))
	s.True(s.find("ACC-001").OverdraftLimit.IsZero())
	s.Empty(s.store.Transactions())

	acct, err := s.svc.Deposit(s.ctx, "ACC-001", dec("0.010"))
	s.Require().NoError(err, "trailing zeros stay within two places")
	s.True(acct.Balance.Equal(dec("100.01")))
}

func (s *LedgerServiceTestSuite) TestGetAllAccounts() {
	accounts, err := s.svc.GetAllAccounts(s.ctx)
	s.Require().NoError(err)
	s.Empty(accounts)

	s.seed(account.New().WithAccountNumber("B-1"))
	s.seed(account.New().WithAccountNumber("A-1"))
	accounts, err = s.svc.GetAllAccounts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(accounts, 2)
	s.Equal("A-1", accounts[0].AccountNumber)
}

func (s *LedgerServiceTestSuite) TestGetStatement_WindowAndOrder() {
	s.seed(account.New().WithAccountNumber("ACC-001"))
	base := s.now

	s.now = base.Add(-31 * 24 * time.Hour)
	_, err := s.svc.Deposit(s.ctx, "ACC-001", dec("1"))
	s.Require().NoError(err)
	s.now = base.Add(-10 * 24 * time.Hour)
	_, err = s.svc.Deposit(s.ctx, "ACC-001", dec("2"))
	s.Require().NoError(err)
	s.now = base.Add(-time.Hour)
	_, err = s.svc.Withdraw(s.ctx, "ACC-001", dec("3"))
	s.Require().NoError(err)

	s.now = base
	st, err := s.svc.GetStatement(s.ctx, "ACC-001")
	s.Require().NoError(err)
	s.Equal(base, st.StatementDate)
	s.True(st.CurrentBalance.Equal(dec("0")))
	s.Require().Len(st.Transactions, 2)
	s.Equal(account.KindWithdrawal, st.Transactions[0].Kind)
	s.Equal(account.KindDepositCurrent, st.Transactions[1].Kind)
	s.True(st.Transactions[1].Amount.Equal(dec("2")))
}

func (s *LedgerServiceTestSuite) TestTransactionRecordedEvent() {
	s.seed(account.New().WithAccountNumber("ACC-001"))
	_, err := s.svc.Deposit(s.ctx, "ACC-001", dec("40"))
	s.Require().NoError(err)

	published := s.bus.Published()
	s.Require().Len(published, 1)
	evt, ok := published[0].(events.TransactionRecordedEvent)
	s.Require().True(ok)
	s.Equal("ACC-001", evt.AccountNumber)
	s.Equal(s.store.Transactions()[0].ID, evt.TransactionID)
}

func (s *LedgerServiceTestSuite) TestEventFailureDoesNotUndoCommit() {
	s.seed(account.New().WithAccountNumber("ACC-001"))
	s.bus.Register(events.EventTypeTransactionRecorded.String(), func(context.Context, eventbus.Event) error {
		return errors.New("broker unavailable")
	})

	acct, err := s.svc.Deposit(s.ctx, "ACC-001", dec("40"))
	s.Require().NoError(err)
	s.True(acct.Balance.Equal(dec("40")))
	s.True(s.find("ACC-001").Balance.Equal(dec("40")))
}

func (s *LedgerServiceTestSuite) TestMetricsOutcomes() {
	s.seed(account.New().WithAccountNumber("ACC-001"))
	_, _ = s.svc.Deposit(s.ctx, "ACC-001", dec("10"))
	_, _ = s.svc.Withdraw(s.ctx, "ACC-001", dec("1000"))

	expected := `
# HELP bankaccount_ledger_operations_total Total number of ledger operations by outcome.
# TYPE bankaccount_ledger_operations_total counter
bankaccount_ledger_operations_total{operation="deposit",outcome="success"} 1
bankaccount_ledger_operations_total{operation="withdraw",outcome="rejected"} 1
`
	s.NoError(testutil.GatherAndCompare(s.metrics.Registry(), strings.NewReader(expected), "bankaccount_ledger_operations_total"))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
