package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/repositories/budgets"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/session"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/google/uuid"
)

// BudgetService manages monthly per-category spending limits and the
// spent-vs-limit report.
type BudgetService interface {
	Set(ctx context.Context, category, month string, limit float64) (*models.Budget, error)
	List(ctx context.Context, month string) ([]models.Budget, error)
	Delete(ctx context.Context, id string) error

	// Report joins the month's budgets with the decoded transactions of
	// that month. Spending is computed client-side over decrypted amounts.
	Report(ctx context.Context, month string) ([]models.BudgetReportRow, error)
}

type budgetService struct {
	sess *session.Session
	repo budgets.Repository
	txs  TransactionService
	log  logging.Logger
	now  func() time.Time
}

func NewBudgetService(sess *session.Session, repo budgets.Repository, txs TransactionService, log logging.Logger) BudgetService {
	return &budgetService{sess: sess, repo: repo, txs: txs, log: log, now: time.Now}
}

func (s *budgetService) Set(ctx context.Context, category, month string, limit float64) (*models.Budget, error) {
	now := s.now().UTC()
	b := &models.Budget{
		ID:        uuid.NewString(),
		UserID:    s.sess.UserID(),
		Category:  category,
		Month:     month,
		Limit:     limit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return b, nil
}

func (s *budgetService) List(ctx context.Context, month string) ([]models.Budget, error) {
	rows, err := s.repo.ListByUserMonth(ctx, s.sess.UserID(), month)
	if err != nil {
		return nil, fmt.Errorf("error listing budgets: %w", err)
	}
	return rows, nil
}

func (s *budgetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, s.sess.UserID(), id); err != nil {
		return fmt.Errorf("error deleting budget: %w", err)
	}
	return nil
}

func (s *budgetService) Report(ctx context.Context, month string) ([]models.BudgetReportRow, error) {
	from, to, err := monthRange(month)
	if err != nil {
		return nil, err
	}

	limits, err := s.List(ctx, month)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	spentByCategory := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type == models.TransactionTypeExpense {
			spentByCategory[tx.Category] += tx.AmountPlain
		}
	}

	report := make([]models.BudgetReportRow, 0, len(limits))
	for _, b := range limits {
		spent := spentByCategory[b.Category]
		report = append(report, models.BudgetReportRow{
			Category:  b.Category,
			Month:     b.Month,
			Limit:     b.Limit,
			Spent:     spent,
			Remaining: b.Limit - spent,
		})
	}
	return report, nil
}
