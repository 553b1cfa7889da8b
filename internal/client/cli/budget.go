package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

const monthLayout = "2006-01"

func (a *App) promptMonth() (string, error) {
	current := time.Now().UTC().Format(monthLayout)
	return GetSimpleTextDefault(a.reader, "Month (YYYY-MM)", current, os.Stdout)
}

// SetBudget creates or replaces a monthly spending limit for a category.
func (a *App) SetBudget(ctx context.Context) error {
	category, err := getSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return err
	}

	month, err := a.promptMonth()
	if err != nil {
		return err
	}

	limitStr, err := getSimpleText(a.reader, "Monthly limit", os.Stdout)
	if err != nil {
		return err
	}
	limit, err := strconv.ParseFloat(limitStr, 64)
	if err != nil {
		log.Printf("Invalid limit %q", limitStr)
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	b, err := a.budgetService.Set(opCtx, category, month, limit)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Budget saved: %s %s %.2f\n", b.Category, b.Month, b.Limit)
	return nil
}

// Budgets lists the limits configured for a month.
func (a *App) Budgets(ctx context.Context) error {
	month, err := a.promptMonth()
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	rows, err := a.budgetService.List(opCtx, month)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	for _, b := range rows {
		fmt.Printf("%s  %-12s %8.2f\n", b.ID, b.Category, b.Limit)
	}
	return nil
}

// Report prints the spent-vs-limit report for a month.
func (a *App) Report(ctx context.Context) error {
	month, err := a.promptMonth()
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	rows, err := a.budgetService.Report(opCtx, month)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("%-12s %10s %10s %10s\n", "category", "limit", "spent", "left")
	for _, row := range rows {
		over := ""
		if row.Remaining < 0 {
			over = "  OVER"
		}
		fmt.Printf("%-12s %10.2f %10.2f %10.2f%s\n", row.Category, row.Limit, row.Spent, row.Remaining, over)
	}
	return nil
}
