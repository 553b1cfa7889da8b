package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
)

// CategoryTotal is the aggregated expense amount for one category.
type CategoryTotal struct {
	Category string
	Total    float64
}

// MonthlySummary aggregates one month's income and expenses.
type MonthlySummary struct {
	Month   string
	Income  float64
	Expense float64
	Net     float64
}

// AnalyticsService computes dashboard aggregates. All aggregation happens
// client-side over decoded records: the backend only ever sees the mirror
// fields, and the displayed numbers come from decrypted values whenever the
// session holds a key.
type AnalyticsService interface {
	CategoryTotals(ctx context.Context, month string) ([]CategoryTotal, error)
	Summary(ctx context.Context, month string) (*MonthlySummary, error)
}

type analyticsService struct {
	txs TransactionService
}

func NewAnalyticsService(txs TransactionService) AnalyticsService {
	return &analyticsService{txs: txs}
}

func (s *analyticsService) CategoryTotals(ctx context.Context, month string) ([]CategoryTotal, error) {
	txs, err := s.monthTransactions(ctx, month)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type == models.TransactionTypeExpense {
			totals[tx.Category] += tx.AmountPlain
		}
	}

	result := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Total > result[j].Total })
	return result, nil
}

func (s *analyticsService) Summary(ctx context.Context, month string) (*MonthlySummary, error) {
	txs, err := s.monthTransactions(ctx, month)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{Month: month}
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			summary.Income += tx.AmountPlain
		case models.TransactionTypeExpense:
			summary.Expense += tx.AmountPlain
		}
	}
	summary.Net = summary.Income - summary.Expense
	return summary, nil
}

func (s *analyticsService) monthTransactions(ctx context.Context, month string) ([]models.Transaction, error) {
	from, to, err := monthRange(month)
	if err != nil {
		return nil, err
	}
	return s.txs.ListBetween(ctx, from, to)
}

// monthRange converts a YYYY-MM month into the [from, to) UTC interval
// covering it.
func monthRange(month string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return from, from.AddDate(0, 1, 0), nil
}
