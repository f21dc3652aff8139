package account

import (
	"github.com/amirasaad/bankaccount/pkg/service/ledger"
	"github.com/amirasaad/bankaccount/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers HTTP routes for bank account operations.
//
// Routes:
//   - GET    /bank-accounts                         : List every account.
//   - POST   /bank-accounts                         : Open a new account.
//   - POST   /bank-accounts/cash-deposit            : Deposit cash on the current account.
//   - POST   /bank-accounts/cash-withdrawal         : Withdraw cash, overdraft permitting.
//   - POST   /bank-accounts/overdraft               : Change the overdraft limit.
//   - POST   /bank-accounts/savings-deposit         : Deposit on the savings account, up to its cap.
//   - GET    /bank-accounts/statement/:accountNumber : Statement of the last 30 days.
func Routes(app fiber.Router, svc *ledger.Service) {
	group := app.Group("/bank-accounts")
	group.Get("", GetAllAccounts(svc))
	group.Post("", OpenAccount(svc))
	group.Post("/cash-deposit", Deposit(svc))
	group.Post("/cash-withdrawal", Withdraw(svc))
	group.Post("/overdraft", SetOverdraftLimit(svc))
	group.Post("/savings-deposit", DepositToSavings(svc))
	group.Get("/statement/:accountNumber", GetStatement(svc))
}

// GetAllAccounts returns a Fiber handler listing every account.
// @Summary List accounts
// @Description Returns every bank account ordered by account number.
// @Tags bank-accounts
// @Produce json
// @Success 200 {array} BankAccountDTO
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /bank-accounts [get]
func GetAllAccounts(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := svc.GetAllAccounts(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return c.JSON(ToBankAccountDTOs(accounts))
	}
}

// OpenAccount returns a Fiber handler opening a new, empty account.
// @Summary Open an account
// @Description Opens an account with zero balances, no overdraft and the default savings cap.
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param request body OpenAccountRequest true "Account to open"
// @Success 201 {object} BankAccountDTO
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 409 {object} common.ProblemDetails "Account already exists"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /bank-accounts [post]
func OpenAccount(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		a, err := svc.OpenAccount(c.UserContext(), input.AccountNumber)
		if err != nil {
			log.Errorf("Failed to open account %s: %v", input.AccountNumber, err)
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		log.Infof("Account opened: %s", a.AccountNumber)
		return c.Status(fiber.StatusCreated).JSON(ToBankAccountDTO(a))
	}
}

// Deposit returns a Fiber handler for cash deposits.
// @Summary Deposit cash
// @Description Adds the amount to the current balance and records a ledger entry.
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Deposit details"
// @Success 200 {object} BankAccountDTO
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /bank-accounts/cash-deposit [post]
func Deposit(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Deposit(c.UserContext(), input.AccountNumber, *input.Amount)
		if err != nil {
			log.Errorf("Failed to deposit on %s: %v", input.AccountNumber, err)
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return c.JSON(ToBankAccountDTO(a))
	}
}

// Withdraw returns a Fiber handler for cash withdrawals.
// @Summary Withdraw cash
// @Description Withdraws the amount when the balance after the operation stays within the overdraft limit.
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Withdrawal details"
// @Success 200 {object} BankAccountDTO
// @Failure 400 {object} common.ProblemDetails "Invalid request or insufficient balance"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /bank-accounts/cash-withdrawal [post]
func Withdraw(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Withdraw(c.UserContext(), input.AccountNumber, *input.Amount)
		if err != nil {
			log.Errorf("Failed to withdraw from %s: %v", input.AccountNumber, err)
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return c.JSON(ToBankAccountDTO(a))
	}
}

// SetOverdraftLimit returns a Fiber handler changing an account's overdraft limit.
// @Summary Set overdraft limit
// @Description Sets the overdraft limit, between 0 and 300. Savings-only accounts (SAV-) cannot have one.
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param request body OverdraftRequest true "Overdraft details"
// @Success 200 {object} BankAccountDTO
// @Failure 400 {object} common.ProblemDetails "Invalid request or limit"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /bank-accounts/overdraft [post]
func SetOverdraftLimit(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OverdraftRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.SetOverdraftLimit(c.UserContext(), input.AccountNumber, *input.OverdraftLimit)
		if err != nil {
			log.Errorf("Failed to set overdraft on %s: %v", input.AccountNumber, err)
			return common.ProblemDetailsJSON(c, "Failed to set overdraft limit", err)
		}
		return c.JSON(ToBankAccountDTO(a))
	}
}

// DepositToSavings returns a Fiber handler for savings deposits.
// @Summary Deposit on savings
// @Description Deposits up to the remaining savings capacity. Any excess is not deposited.
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Deposit details"
// @Success 200 {object} BankAccountDTO
// @Failure 400 {object} common.ProblemDetails "Invalid request or savings at capacity"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /bank-accounts/savings-deposit [post]
func DepositToSavings(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.DepositToSavings(c.UserContext(), input.AccountNumber, *input.Amount)
		if err != nil {
			log.Errorf("Failed to deposit on savings of %s: %v", input.AccountNumber, err)
			return common.ProblemDetailsJSON(c, "Failed to deposit on savings", err)
		}
		return c.JSON(ToBankAccountDTO(a))
	}
}

// GetStatement returns a Fiber handler building an account statement.
// @Summary Account statement
// @Description Returns balances, the derived account type and the last 30 days of transactions, newest first.
// @Tags bank-accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} StatementDTO
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /bank-accounts/statement/{accountNumber} [get]
func GetStatement(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("accountNumber")
		st, err := svc.GetStatement(c.UserContext(), number)
		if err != nil {
			log.Errorf("Failed to build statement for %s: %v", number, err)
			return common.ProblemDetailsJSON(c, "Failed to build statement", err)
		}
		return c.JSON(ToStatementDTO(st))
	}
}
