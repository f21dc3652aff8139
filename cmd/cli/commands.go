package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/amirasaad/bankaccount/pkg/service/ledger"
	accountweb "github.com/amirasaad/bankaccount/webapi/account"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

type command struct {
	usage string
	nargs int
	run   func(c *cli, ctx context.Context, args []string) error
}

var commandOrder = []string{"list", "open", "deposit", "withdraw", "overdraft", "savings", "statement"}

var commands = map[string]command{
	"list":      {"list every account", 0, (*cli).list},
	"open":      {"open <account_number>", 1, (*cli).open},
	"deposit":   {"deposit <account_number> <amount>", 2, (*cli).deposit},
	"withdraw":  {"withdraw <account_number> <amount>", 2, (*cli).withdraw},
	"overdraft": {"overdraft <account_number> <limit>", 2, (*cli).overdraft},
	"savings":   {"savings <account_number> <amount>", 2, (*cli).savings},
	"statement": {"statement <account_number>", 1, (*cli).statement},
}

var (
	errUsage = errors.New("invalid arguments")

	successColor = color.New(color.FgGreen)
	headerColor  = color.New(color.FgCyan, color.Bold)
	negColor     = color.New(color.FgRed)
)

type cli struct {
	svc   *ledger.Service
	out   io.Writer
	width int
}

func (c *cli) execute(ctx context.Context, args []string) error {
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	if len(args)-1 != cmd.nargs {
		return fmt.Errorf("%w: usage: %s", errUsage, cmd.usage)
	}
	return cmd.run(c, ctx, args[1:])
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", errUsage, s)
	}
	return d, nil
}

func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.IsNegative() {
		return negColor.Sprint(s)
	}
	return s
}

func (c *cli) printAccount(prefix string, a *account.Account) {
	successColor.Fprint(c.out, prefix)
	fmt.Fprintf(c.out, " %s: balance=%s overdraft=%s savings=%s/%s\n",
		a.AccountNumber,
		money(a.Balance),
		a.OverdraftLimit.StringFixed(2),
		a.SavingsBalance.StringFixed(2),
		a.SavingsDepositLimit.StringFixed(2),
	)
}

func (c *cli) list(ctx context.Context, _ []string) error {
	accounts, err := c.svc.GetAllAccounts(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Fprintln(c.out, "No accounts.")
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tBALANCE\tOVERDRAFT\tSAVINGS\tSAVINGS LIMIT")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.AccountNumber,
			a.Balance.StringFixed(2),
			a.OverdraftLimit.StringFixed(2),
			a.SavingsBalance.StringFixed(2),
			a.SavingsDepositLimit.StringFixed(2),
		)
	}
	return tw.Flush()
}

func (c *cli) open(ctx context.Context, args []string) error {
	a, err := c.svc.OpenAccount(ctx, args[0])
	if err != nil {
		return err
	}
	c.printAccount("Account opened", a)
	return nil
}

func (c *cli) deposit(ctx context.Context, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	a, err := c.svc.Deposit(ctx, args[0], amount)
	if err != nil {
		return err
	}
	c.printAccount("Deposited "+amount.StringFixed(2)+" on", a)
	return nil
}

func (c *cli) withdraw(ctx context.Context, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	a, err := c.svc.Withdraw(ctx, args[0], amount)
	if err != nil {
		return err
	}
	c.printAccount("Withdrew "+amount.StringFixed(2)+" from", a)
	return nil
}

func (c *cli) overdraft(ctx context.Context, args []string) error {
	limit, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	a, err := c.svc.SetOverdraftLimit(ctx, args[0], limit)
	if err != nil {
		return err
	}
	c.printAccount("Overdraft limit set on", a)
	return nil
}

func (c *cli) savings(ctx context.Context, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	before, err := c.svc.GetStatement(ctx, args[0])
	if err != nil {
		return err
	}
	a, err := c.svc.DepositToSavings(ctx, args[0], amount)
	if err != nil {
		return err
	}
	deposited := a.SavingsBalance.Sub(before.SavingsBalance)
	c.printAccount("Saved "+deposited.StringFixed(2)+" on", a)
	if deposited.LessThan(amount) {
		color.New(color.FgYellow).Fprintf(c.out, "Savings limit reached: %s was not deposited\n", amount.Sub(deposited).StringFixed(2))
	}
	return nil
}

func (c *cli) statement(ctx context.Context, args []string) error {
	st, err := c.svc.GetStatement(ctx, args[0])
	if err != nil {
		return err
	}
	headerColor.Fprintf(c.out, "Statement %s (%s)\n", st.AccountNumber, accountweb.AccountTypeLabel(st.AccountType))
	fmt.Fprintf(c.out, "Date: %s\n", st.StatementDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(c.out, "Current balance: %s\n", money(st.CurrentBalance))
	fmt.Fprintf(c.out, "Savings balance: %s\n", st.SavingsBalance.StringFixed(2))
	fmt.Fprintln(c.out, strings.Repeat("-", min(c.width, 72)))
	if len(st.Transactions) == 0 {
		fmt.Fprintln(c.out, "No transactions in the last 30 days.")
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tBALANCE AFTER\t")
	for _, tx := range st.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			tx.Timestamp.Format("2006-01-02 15:04"),
			accountweb.TransactionKindLabel(tx.Kind),
			tx.Amount.StringFixed(2),
			tx.BalanceAfter.StringFixed(2),
		)
	}
	return tw.Flush()
}
