package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/bankaccount/infra/repository/memory"
	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/amirasaad/bankaccount/pkg/service/ledger"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	svc := ledger.New(ledger.Deps{
		Uow:    memory.NewUoW(memory.NewStore()),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	var out bytes.Buffer
	return &cli{svc: svc, out: &out, width: 80}, &out
}

func TestCLI_Scenario(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := context.Background()

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"open", "ACC-001"}, "Account opened ACC-001: balance=0.00"},
		{[]string{"deposit", "ACC-001", "100"}, "balance=100.00"},
		{[]string{"overdraft", "ACC-001", "50"}, "overdraft=50.00"},
		{[]string{"withdraw", "ACC-001", "130"}, "balance=-30.00"},
		{[]string{"savings", "ACC-001", "10"}, "Saved 10.00 on ACC-001"},
		{[]string{"list"}, "ACC-001"},
	}
	for _, step := range steps {
		out.Reset()
		require.NoError(t, c.execute(ctx, step.args), step.args)
		assert.Contains(t, out.String(), step.want, step.args)
	}

	out.Reset()
	require.NoError(t, c.execute(ctx, []string{"statement", "ACC-001"}))
	assert.Contains(t, out.String(), "Compte Courant + Livret d'épargne")
	assert.Contains(t, out.String(), "Current balance: -30.00")
	assert.Contains(t, out.String(), "Retrait")
	assert.Contains(t, out.String(), "Dépôt sur livret d'épargne")
}

func TestCLI_SavingsPartialFill(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := context.Background()
	require.NoError(t, c.execute(ctx, []string{"open", "SAV-001"}))
	require.NoError(t, c.execute(ctx, []string{"savings", "SAV-001", "22900"}))

	out.Reset()
	require.NoError(t, c.execute(ctx, []string{"savings", "SAV-001", "100"}))
	assert.Contains(t, out.String(), "Saved 50.00 on SAV-001")
	assert.Contains(t, out.String(), "50.00 was not deposited")

	err := c.execute(ctx, []string{"savings", "SAV-001", "1"})
	assert.ErrorIs(t, err, account.ErrSavingsAtCapacity)
}

func TestCLI_Errors(t *testing.T) {
	c, _ := newTestCLI(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.execute(ctx, []string{"deposit", "ACC-001"}), errUsage)
	assert.ErrorIs(t, c.execute(ctx, []string{"deposit", "ACC-001", "ten"}), errUsage)
	assert.ErrorIs(t, c.execute(ctx, []string{"deposit", "UNKNOWN", "10"}), account.ErrAccountNotFound)
	assert.ErrorIs(t, c.execute(ctx, []string{"statement", "UNKNOWN"}), account.ErrAccountNotFound)
	assert.Error(t, c.execute(ctx, []string{"transfer"}))
}

func TestCLI_EmptyList(t *testing.T) {
	c, out := newTestCLI(t)
	require.NoError(t, c.execute(context.Background(), []string{"list"}))
	assert.Equal(t, "No accounts.\n", out.String())
}

func TestRun_UsageAndUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "statement <account_number>")

	stdout.Reset()
	assert.Equal(t, 2, run(context.Background(), []string{"transfer"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Unknown command: transfer")
}
