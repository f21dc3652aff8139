package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/amirasaad/bankaccount/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindAll(ctx context.Context) ([]*account.Account, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).Order("account_number").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts := make([]*account.Account, 0, len(rows))
	for i := range rows {
		a, err := toDomainAccount(&rows[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (r *accountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	return r.find(r.db.WithContext(ctx), accountNumber)
}

func (r *accountRepository) FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*account.Account, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), accountNumber)
}

func (r *accountRepository) find(db *gorm.DB, accountNumber string) (*account.Account, error) {
	var row Account
	result := db.Where("account_number = ?", accountNumber).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, account.NewAccountNotFound(accountNumber)
		}
		return nil, fmt.Errorf("find account %s: %w", accountNumber, result.Error)
	}
	return toDomainAccount(&row)
}

func (r *accountRepository) Save(ctx context.Context, a *account.Account) error {
	now := time.Now().UTC()
	if !a.IsPersisted() {
		a.ID = uuid.New()
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		a.UpdatedAt = now
		row := fromDomainAccount(a)
		if err := WrapError(func() error {
			return r.db.WithContext(ctx).Create(&row).Error
		}); err != nil {
			a.ID = uuid.Nil
			return err
		}
		return nil
	}

	a.UpdatedAt = now
	result := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", a.ID).Updates(map[string]any{
		"balance":               a.Balance,
		"overdraft_limit":       a.OverdraftLimit,
		"savings_balance":       a.SavingsBalance,
		"savings_deposit_limit": a.SavingsDepositLimit,
		"updated_at":            a.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("update account %s: %w", a.AccountNumber, MapGormErrorToDomain(result.Error))
	}
	if result.RowsAffected == 0 {
		return account.NewAccountNotFound(a.AccountNumber)
	}
	return nil
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Append(ctx context.Context, tx *account.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	row := Transaction{
		ID:            tx.ID,
		AccountNumber: tx.AccountNumber,
		Kind:          tx.Kind.String(),
		Amount:        tx.Amount,
		BalanceAfter:  tx.BalanceAfter,
		CreatedAt:     tx.Timestamp.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) FindByAccountNumberSince(
	ctx context.Context,
	accountNumber string,
	since time.Time,
) ([]*account.Transaction, error) {
	var rows []*Transaction
	result := r.db.WithContext(ctx).
		Where("account_number = ? AND created_at > ?", accountNumber, since.UTC()).
		Order("created_at desc").
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("list transactions: %w", result.Error)
	}
	txs := make([]*account.Transaction, 0, len(rows))
	for _, t := range rows {
		txs = append(txs, account.NewTransactionFromData(
			t.ID, t.AccountNumber, t.CreatedAt, account.TransactionKind(t.Kind), t.Amount, t.BalanceAfter,
		))
	}
	return txs, nil
}

func toDomainAccount(row *Account) (*account.Account, error) {
	a, err := account.New().
		WithID(row.ID).
		WithAccountNumber(row.AccountNumber).
		WithBalance(row.Balance).
		WithOverdraftLimit(row.OverdraftLimit).
		WithSavingsBalance(row.SavingsBalance).
		WithSavingsDepositLimit(row.SavingsDepositLimit).
		WithCreatedAt(row.CreatedAt).
		WithUpdatedAt(row.UpdatedAt).
		Build()
	if err != nil {
		return nil, fmt.Errorf("hydrate account %s: %w", row.AccountNumber, err)
	}
	return a, nil
}

func fromDomainAccount(a *account.Account) Account {
	return Account{
		ID:                  a.ID,
		AccountNumber:       a.AccountNumber,
		Balance:             a.Balance,
		OverdraftLimit:      a.OverdraftLimit,
		SavingsBalance:      a.SavingsBalance,
		SavingsDepositLimit: a.SavingsDepositLimit,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}
