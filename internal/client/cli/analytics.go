package cli

import (
	"context"
	"fmt"
	"log"
)

// Summary prints a month's income, expenses, and net total.
func (a *App) Summary(ctx context.Context) error {
	month, err := a.promptMonth()
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	s, err := a.analytics.Summary(opCtx, month)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("%s  income %.2f  expense %.2f  net %.2f\n", s.Month, s.Income, s.Expense, s.Net)
	return nil
}

// Top prints a month's expense totals per category, biggest first.
func (a *App) Top(ctx context.Context) error {
	month, err := a.promptMonth()
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	totals, err := a.analytics.CategoryTotals(opCtx, month)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	for _, t := range totals {
		fmt.Printf("%-12s %10.2f\n", t.Category, t.Total)
	}
	return nil
}
