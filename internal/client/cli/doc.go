// Package cli provides the interactive BudgetKeeper command-line client.
//
// It wires configuration, the local key cache, the hosted document store,
// and an interactive REPL over the transaction, budget, and analytics
// services. Typical flow: paste a session token from the auth provider,
// let the session resolve the encryption key, then execute user commands.
//
// Key features:
//   - Login / Logout (token intake and session teardown)
//   - Add / List / Show / Delete transactions with field-level encryption
//   - Import transactions from a CSV file
//   - Monthly budgets and a spent-vs-limit report
//   - Month summaries and top spending categories
//   - Encryption key export and import for device transfer
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
