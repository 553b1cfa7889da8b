package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
)

// List prints the user's transactions, newest first as returned by the
// store. Values that could not be decrypted are marked so the user knows a
// plaintext mirror is on display.
func (a *App) List(ctx context.Context) error {
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	rows, err := a.txService.List(opCtx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, tx := range rows {
		fmt.Println(formatTransaction(&tx))
	}
	return nil
}

// Show prints a single transaction in full.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter record id to show", os.Stdout)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	tx, err := a.txService.Get(opCtx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println(formatTransaction(tx))
	fmt.Printf("  currency: %s\n", tx.Currency)
	fmt.Printf("  created:  %s\n", tx.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  updated:  %s\n", tx.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// Delete removes a transaction by id.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter record id to delete", os.Stdout)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	if err := a.txService.Delete(opCtx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}

func formatTransaction(tx *models.Transaction) string {
	amountMark := ""
	if tx.AmountUnverified {
		amountMark = "?"
	}
	dateMark := ""
	if tx.DateUnverified {
		dateMark = "?"
	}
	return fmt.Sprintf("%s  %s%s  %8.2f%s %-8s %-12s %s",
		tx.ID, tx.DatePlain.Format(dateLayout), dateMark,
		tx.AmountPlain, amountMark, tx.Type, tx.Category, tx.Description)
}
