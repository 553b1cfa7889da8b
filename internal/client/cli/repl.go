package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Delete(ctx context.Context) error
	ImportCSV(ctx context.Context) error
	SetBudget(ctx context.Context) error
	Budgets(ctx context.Context) error
	Report(ctx context.Context) error
	Summary(ctx context.Context) error
	Top(ctx context.Context) error
	KeyExport(ctx context.Context) error
	KeyImport(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the BudgetKeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — paste a session token and unlock encryption
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - add            — add a transaction
//	  - list           — list transactions
//	  - show           — show a single transaction (interactive ID prompt)
//	  - delete         — delete a transaction
//	  - import         — import transactions from a CSV file
//	  - budget         — set a monthly category limit
//	  - budgets        — list a month's limits
//	  - report         — spent-vs-limit report
//	  - summary        — month income/expense/net
//	  - top            — top spending categories
//	  - keyexport      — print the encryption key for device transfer
//	  - keyimport      — replace the encryption key with an exported one
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bk> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, show, delete, import, budget, budgets, report, summary, top, keyexport, keyimport, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "import":
			_ = a.ImportCSV(ctx)

		case "budget":
			_ = a.SetBudget(ctx)

		case "budgets":
			_ = a.Budgets(ctx)

		case "report":
			_ = a.Report(ctx)

		case "summary":
			_ = a.Summary(ctx)

		case "top":
			_ = a.Top(ctx)

		case "keyexport":
			_ = a.KeyExport(ctx)

		case "keyimport":
			_ = a.KeyImport(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
