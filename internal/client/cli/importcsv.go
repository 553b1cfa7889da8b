package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/csvx"
)

// ImportCSV parses a CSV file of transactions and saves every valid row.
// Rows the parser rejects are skipped with a warning; a storage failure
// stops the import and reports how many rows made it.
func (a *App) ImportCSV(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to CSV file", os.Stdout)
	if err != nil {
		return err
	}

	rows, skipped, err := csvx.ParseFile(ctx, path, a.log)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	if skipped > 0 {
		fmt.Printf("Skipped %d invalid row(s)\n", skipped)
	}

	n, err := a.txService.Import(ctx, rows)
	if err != nil {
		log.Printf("Import failed after %d row(s): %s", n, err.Error())
		return err
	}

	fmt.Printf("Imported %d transaction(s)\n", n)
	return nil
}
