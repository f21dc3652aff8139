package account

import (
	"time"

	domainaccount "github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/shopspring/decimal"
)

//revive:disable

// OpenAccountRequest represents the request body for opening a new account.
type OpenAccountRequest struct {
	AccountNumber string `json:"accountNumber" validate:"required,max=64"`
}

// AmountRequest is the body of cash deposits, withdrawals and savings deposits.
type AmountRequest struct {
	AccountNumber string           `json:"accountNumber" validate:"required,max=64"`
	Amount        *decimal.Decimal `json:"amount" swaggertype:"number" validate:"required"`
}

// OverdraftRequest represents the request body for changing an overdraft limit.
type OverdraftRequest struct {
	AccountNumber  string           `json:"accountNumber" validate:"required,max=64"`
	OverdraftLimit *decimal.Decimal `json:"overdraftLimit" swaggertype:"number" validate:"required"`
}

// BankAccountDTO is the API response representation of an account.
type BankAccountDTO struct {
	ID                  string  `json:"id"`
	AccountNumber       string  `json:"accountNumber"`
	Balance             float64 `json:"balance"`
	OverdraftLimit      float64 `json:"overdraftLimit"`
	SavingsBalance      float64 `json:"savingsBalance"`
	SavingsDepositLimit float64 `json:"savingsDepositLimit"`
}

// TransactionDTO is one statement line.
type TransactionDTO struct {
	Date         time.Time `json:"date"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	BalanceAfter float64   `json:"balanceAfter"`
}

// StatementDTO is the API response representation of an account statement.
type StatementDTO struct {
	AccountNumber  string           `json:"accountNumber"`
	AccountType    string           `json:"accountType"`
	CurrentBalance float64          `json:"currentBalance"`
	SavingsBalance float64          `json:"savingsBalance"`
	StatementDate  time.Time        `json:"statementDate"`
	Transactions   []TransactionDTO `json:"transactions"`
}

var accountTypeLabels = map[domainaccount.Type]string{
	domainaccount.TypeCurrent:           "Compte Courant",
	domainaccount.TypeSavings:           "Livret d'épargne",
	domainaccount.TypeCurrentAndSavings: "Compte Courant + Livret d'épargne",
}

var transactionKindLabels = map[domainaccount.TransactionKind]string{
	domainaccount.KindDepositCurrent: "Dépôt sur compte courant",
	domainaccount.KindWithdrawal:     "Retrait",
	domainaccount.KindDepositSavings: "Dépôt sur livret d'épargne",
}

// AccountTypeLabel returns the display label of t.
func AccountTypeLabel(t domainaccount.Type) string {
	if label, ok := accountTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// TransactionKindLabel returns the display label of k.
func TransactionKindLabel(k domainaccount.TransactionKind) string {
	if label, ok := transactionKindLabels[k]; ok {
		return label
	}
	return k.String()
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ToBankAccountDTO maps a domain account to its API representation.
func ToBankAccountDTO(a *domainaccount.Account) BankAccountDTO {
	return BankAccountDTO{
		ID:                  a.ID.String(),
		AccountNumber:       a.AccountNumber,
		Balance:             toFloat(a.Balance),
		OverdraftLimit:      toFloat(a.OverdraftLimit),
		SavingsBalance:      toFloat(a.SavingsBalance),
		SavingsDepositLimit: toFloat(a.SavingsDepositLimit),
	}
}

// ToBankAccountDTOs maps a slice of domain accounts.
func ToBankAccountDTOs(accounts []*domainaccount.Account) []BankAccountDTO {
	dtos := make([]BankAccountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, ToBankAccountDTO(a))
	}
	return dtos
}

// ToStatementDTO maps a domain statement to its API representation.
func ToStatementDTO(st *domainaccount.Statement) StatementDTO {
	txs := make([]TransactionDTO, 0, len(st.Transactions))
	for _, tx := range st.Transactions {
		txs = append(txs, TransactionDTO{
			Date:         tx.Timestamp,
			Type:         TransactionKindLabel(tx.Kind),
			Amount:       toFloat(tx.Amount),
			BalanceAfter: toFloat(tx.BalanceAfter),
		})
	}
	return StatementDTO{
		AccountNumber:  st.AccountNumber,
		AccountType:    AccountTypeLabel(st.AccountType),
		CurrentBalance: toFloat(st.CurrentBalance),
		SavingsBalance: toFloat(st.SavingsBalance),
		StatementDate:  st.StatementDate,
		Transactions:   txs,
	}
}
