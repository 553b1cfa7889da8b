package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/services"
)

const dateLayout = "2006-01-02"

// Add interactively collects a transaction and saves it. The amount and the
// date are encrypted before the record leaves the process.
func (a *App) Add(ctx context.Context) error {
	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	category, err := GetSimpleTextDefault(a.reader, "Category", "uncategorized", os.Stdout)
	if err != nil {
		return err
	}

	typ, err := GetSimpleTextDefault(a.reader, "Type (income/expense)", string(models.TransactionTypeExpense), os.Stdout)
	if err != nil {
		return err
	}

	currency, err := GetSimpleTextDefault(a.reader, "Currency", "USD", os.Stdout)
	if err != nil {
		return err
	}

	amountStr, err := getSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		log.Printf("Invalid amount %q", amountStr)
		return err
	}

	today := time.Now().UTC().Format(dateLayout)
	dateStr, err := GetSimpleTextDefault(a.reader, "Date (YYYY-MM-DD)", today, os.Stdout)
	if err != nil {
		return err
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		log.Printf("Invalid date %q", dateStr)
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	tx, err := a.txService.Add(opCtx, services.TransactionInput{
		Description: description,
		Category:    category,
		Type:        models.TransactionType(typ),
		Currency:    currency,
		Amount:      amount,
		Date:        date,
	})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Saved %s\n", tx.ID)
	return nil
}
