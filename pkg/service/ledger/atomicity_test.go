package ledger_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/bankaccount/infra/repository/memory"
	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/amirasaad/bankaccount/pkg/repository"
	"github.com/amirasaad/bankaccount/pkg/service/ledger"
	"github.com/stretchr/testify/mock"
)

type mockTransactionRepository struct {
	mock.Mock
}

func (m *mockTransactionRepository) Append(ctx context.Context, tx *account.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTransactionRepository) FindByAccountNumberSince(
	ctx context.Context,
	accountNumber string,
	since time.Time,
) ([]*account.Transaction, error) {
	args := m.Called(ctx, accountNumber, since)
	txs, _ := args.Get(0).([]*account.Transaction)
	return txs, args.Error(1)
}

// swappedTxUoW wraps a UnitOfWork and replaces its transaction repository.
type swappedTxUoW struct {
	inner  repository.UnitOfWork
	txRepo repository.TransactionRepository
}

func (u swappedTxUoW) Do(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	return u.inner.Do(ctx, func(inner repository.UnitOfWork) error {
		return fn(swappedTxUoW{inner: inner, txRepo: u.txRepo})
	})
}

func (u swappedTxUoW) AccountRepository() (repository.AccountRepository, error) {
	return u.inner.AccountRepository()
}

func (u swappedTxUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return u.txRepo, nil
}

func (s *LedgerServiceTestSuite) TestFailedAppendRollsBackBalance() {
	s.seed(account.New().WithAccountNumber("ACC-001").WithBalance(dec("100")))
	txRepo := &mockTransactionRepository{}
	boom := errors.New("disk full")
	txRepo.On("Append", mock.Anything, mock.AnythingOfType("*account.Transaction")).Return(boom)
	svc := s.serviceFor(swappedTxUoW{inner: memory.NewUoW(s.store), txRepo: txRepo})

	_, err := svc.Withdraw(s.ctx, "ACC-001", dec("40"))
	s.ErrorIs(err, boom)
	s.True(s.find("ACC-001").Balance.Equal(dec("100")), "balance change rolled back with the failed append")
	s.Empty(s.bus.Published())
	txRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestStatementPropagatesRepositoryError() {
	s.seed(account.New().WithAccountNumber("ACC-001"))
	txRepo := &mockTransactionRepository{}
	boom := errors.New("read timeout")
	txRepo.On("FindByAccountNumberSince", mock.Anything, "ACC-001", s.now.Add(-account.StatementWindow)).
		Return(nil, boom)
	svc := s.serviceFor(swappedTxUoW{inner: memory.NewUoW(s.store), txRepo: txRepo})

	_, err := svc.GetStatement(s.ctx, "ACC-001")
	s.ErrorIs(err, boom)
	txRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestStatementLogLevels() {
	s.seed(account.New().WithAccountNumber("ACC-001"))
	txRepo := &mockTransactionRepository{}
	txRepo.On("FindByAccountNumberSince", mock.Anything, "ACC-001", mock.Anything).
		Return(nil, errors.New("read timeout"))
	var buf bytes.Buffer
	svc := ledger.New(ledger.Deps{
		Uow:    swappedTxUoW{inner: memory.NewUoW(s.store), txRepo: txRepo},
		Logger: slog.New(slog.NewJSONHandler(&buf, nil)),
		Clock:  func() time.Time { return s.now },
	})

	_, err := svc.GetStatement(s.ctx, "ACC-001")
	s.Require().Error(err)
	s.Contains(buf.String(), `"level":"ERROR","msg":"GetStatement failed"`)

	buf.Reset()
	_, err = svc.GetStatement(s.ctx, "UNKNOWN")
	s.ErrorIs(err, account.ErrAccountNotFound)
	s.Contains(buf.String(), `"level":"WARN","msg":"GetStatement rejected"`)
	s.NotContains(buf.String(), `"level":"ERROR"`)
}
