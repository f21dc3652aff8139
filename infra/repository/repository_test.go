package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAccountRepository_FindByAccountNumber(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(accountColumns).
		AddRow(id.String(), "ACC-001", "100.00", "50.00", "0.00", "22950.00", now, now)
	mock.ExpectQuery(`SELECT \* FROM "bank_accounts" WHERE account_number = \$1`).
		WithArgs("ACC-001", 1).
		WillReturnRows(rows)

	acc, err := repo.FindByAccountNumber(context.Background(), "ACC-001")
	require.NoError(err)
	assert.Equal(id, acc.ID)
	assert.Equal("ACC-001", acc.AccountNumber)
	assert.True(acc.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(acc.OverdraftLimit.Equal(decimal.NewFromInt(50)))
	assert.True(acc.SavingsDepositLimit.Equal(account.DefaultSavingsDepositLimit))
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByAccountNumber_NotFound(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "bank_accounts" WHERE account_number = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	acc, err := repo.FindByAccountNumber(context.Background(), "UNKNOWN")
	require.Nil(acc)
	require.ErrorIs(err, account.ErrAccountNotFound)
	var notFound *account.AccountNotFoundError
	require.ErrorAs(err, &notFound)
	require.Equal("UNKNOWN", notFound.AccountNumber)
}

func TestAccountRepository_FindByAccountNumber_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "bank_accounts"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByAccountNumber(context.Background(), "ACC-001")
	require.Error(t, err)
	assert.NotErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_FindByAccountNumberForUpdate_LocksRow(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "bank_accounts" WHERE account_number = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(uuid.NewString(), "ACC-001", "0", "0", "0", "22950", now, now))

	acc, err := repo.FindByAccountNumberForUpdate(context.Background(), "ACC-001")
	require.NoError(err)
	require.Equal("ACC-001", acc.AccountNumber)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_FindAll(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "bank_accounts" ORDER BY account_number`).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(uuid.NewString(), "ACC-001", "10", "0", "0", "22950", now, now).
			AddRow(uuid.NewString(), "SAV-001", "0", "0", "500", "22950", now, now))

	accounts, err := repo.FindAll(context.Background())
	require.NoError(err)
	require.Len(accounts, 2)
	require.Equal("SAV-001", accounts[1].AccountNumber)
	require.True(accounts[1].SavingsBalance.Equal(decimal.NewFromInt(500)))
}

func TestAccountRepository_Save_InsertAssignsID(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	acc, err := account.New().WithAccountNumber("ACC-NEW").Build()
	require.NoError(err)

	mock.ExpectExec(`INSERT INTO "bank_accounts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(repo.Save(context.Background(), acc))
	require.True(acc.IsPersisted())
	require.False(acc.CreatedAt.IsZero())
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_Save_Duplicate(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	acc, err := account.New().WithAccountNumber("ACC-001").Build()
	require.NoError(err)

	mock.ExpectExec(`INSERT INTO "bank_accounts"`).
		WillReturnError(gorm.ErrDuplicatedKey)

	err = repo.Save(context.Background(), acc)
	require.ErrorIs(err, account.ErrAccountAlreadyExists)
	require.False(acc.IsPersisted())
}

func TestAccountRepository_Save_Update(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	acc, err := account.New().
		WithID(uuid.New()).
		WithAccountNumber("ACC-001").
		WithBalance(decimal.NewFromInt(70)).
		Build()
	require.NoError(err)

	mock.ExpectExec(`UPDATE "bank_accounts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(repo.Save(context.Background(), acc))

	mock.ExpectExec(`UPDATE "bank_accounts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Save(context.Background(), acc)
	require.ErrorIs(err, account.ErrAccountNotFound)
	require.NoError(mock.ExpectationsWereMet())
}

func TestTransactionRepository_Append(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	tx := account.NewDepositTransaction("ACC-001", decimal.NewFromInt(10), decimal.NewFromInt(110), time.Now())

	mock.ExpectExec(`INSERT INTO "transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(repo.Append(context.Background(), tx))

	mock.ExpectExec(`INSERT INTO "transactions"`).
		WillReturnError(errors.New("create error"))
	require.Error(repo.Append(context.Background(), tx))
	require.NoError(mock.ExpectationsWereMet())
}

func TestTransactionRepository_FindByAccountNumberSince(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	now := time.Now().UTC()
	since := now.Add(-account.StatementWindow)
	newer, older := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{"id", "account_number", "kind", "amount", "balance_after", "created_at"}).
		AddRow(newer.String(), "ACC-001", "WITHDRAWAL", "-30.00", "80.00", now.Add(-time.Hour)).
		AddRow(older.String(), "ACC-001", "DEPOSIT_CURRENT", "10.00", "110.00", now.Add(-48*time.Hour))
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE account_number = \$1 AND created_at > \$2 ORDER BY created_at desc`).
		WithArgs("ACC-001", sqlmock.AnyArg()).
		WillReturnRows(rows)

	txs, err := repo.FindByAccountNumberSince(context.Background(), "ACC-001", since)
	require.NoError(err)
	require.Len(txs, 2)
	assert.Equal(newer, txs[0].ID)
	assert.Equal(account.KindWithdrawal, txs[0].Kind)
	assert.True(txs[0].Amount.Equal(decimal.NewFromInt(-30)))
	assert.Equal(account.KindDepositCurrent, txs[1].Kind)
	require.NoError(mock.ExpectationsWereMet())
}
