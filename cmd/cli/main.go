// Command cli runs ledger operations against the configured database.
//
// Usage:
//
//	cli <command> [arguments]
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/bankaccount/infra/initializer"
	"github.com/amirasaad/bankaccount/pkg/app"
	"github.com/amirasaad/bankaccount/pkg/config"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if f, ok := stdout.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		color.NoColor = true
	}
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		printUsage(stdout)
		return 0
	}
	if _, ok := commands[args[0]]; !ok {
		color.New(color.FgRed).Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.New(color.FgRed).Fprintln(stderr, "Failed to load configuration:", err)
		return 1
	}
	// Logs go to stderr so command output stays clean.
	deps, err := initializer.InitializeDependencies(cfg, initializer.WithLogOutput(stderr))
	if err != nil {
		color.New(color.FgRed).Fprintln(stderr, "Failed to connect to database:", err)
		return 1
	}
	defer deps.Close() //nolint:errcheck

	c := &cli{svc: app.New(deps.Deps).LedgerService, out: stdout, width: terminalWidth(stdout)}
	if err := c.execute(ctx, args); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cli <command> [arguments]")
	fmt.Fprintln(w, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].usage)
	}
}
