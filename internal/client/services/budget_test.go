package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBudgetRepo struct {
	store map[string]*models.Budget
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{store: map[string]*models.Budget{}}
}

func (f *fakeBudgetRepo) Upsert(ctx context.Context, b *models.Budget) error {
	// same natural key updates the stored document in place; its identity
	// and creation time are immutable, and b is refreshed from storage
	for _, existing := range f.store {
		if existing.UserID == b.UserID && existing.Category == b.Category && existing.Month == b.Month {
			existing.Limit = b.Limit
			existing.UpdatedAt = b.UpdatedAt
			*b = *existing
			return nil
		}
	}
	cp := *b
	f.store[b.ID] = &cp
	return nil
}

func (f *fakeBudgetRepo) ListByUserMonth(ctx context.Context, userID, month string) ([]models.Budget, error) {
	var result []models.Budget
	for _, b := range f.store {
		if b.UserID == userID && b.Month == month {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (f *fakeBudgetRepo) DeleteByID(ctx context.Context, userID, id string) error {
	b, ok := f.store[id]
	if !ok || b.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.store, id)
	return nil
}

func newBudgetFixture(t *testing.T) (BudgetService, TransactionService, *fakeBudgetRepo) {
	t.Helper()
	sess := readySession(t, "u-1")
	txRepo := newFakeTxRepo()
	txSvc := newTxService(t, sess, txRepo)
	repo := newFakeBudgetRepo()
	return NewBudgetService(sess, repo, txSvc, testLogger()), txSvc, repo
}

func TestBudgetSet_Validates(t *testing.T) {
	svc, _, _ := newBudgetFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		category string
		month    string
		limit    float64
	}{
		{"empty category", "", "2024-03", 100},
		{"bad month", "food", "2024-13", 100},
		{"month without zero padding", "food", "2024-3", 100},
		{"zero limit", "food", "2024-03", 0},
		{"negative limit", "food", "2024-03", -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Set(ctx, tc.category, tc.month, tc.limit)
			assert.ErrorIs(t, err, common.ErrInvalidBudget)
		})
	}
}

func TestBudgetSet_ReplacesSameCategoryMonth(t *testing.T) {
	svc, _, repo := newBudgetFixture(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, "food", "2024-03", 100)
	require.NoError(t, err)
	_, err = svc.Set(ctx, "food", "2024-03", 250)
	require.NoError(t, err)

	rows, err := svc.List(ctx, "2024-03")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 250.0, rows[0].Limit)
	assert.Len(t, repo.store, 1)
}

func TestBudgetSet_KeepsStoredIdentityOnUpdate(t *testing.T) {
	svc, _, repo := newBudgetFixture(t)
	ctx := context.Background()

	first, err := svc.Set(ctx, "food", "2024-03", 100)
	require.NoError(t, err)

	second, err := svc.Set(ctx, "food", "2024-03", 250)
	require.NoError(t, err)

	require.Len(t, repo.store, 1)
	stored, ok := repo.store[first.ID]
	require.True(t, ok, "the document keeps its original id across updates")
	assert.Equal(t, first.ID, second.ID, "callers see the persisted id, not a fresh one")
	assert.Equal(t, first.CreatedAt, stored.CreatedAt)
	assert.Equal(t, 250.0, stored.Limit)
}

func TestBudgetReport_SpentAndRemaining(t *testing.T) {
	svc, txSvc, _ := newBudgetFixture(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, "food", "2024-03", 300)
	require.NoError(t, err)
	_, err = svc.Set(ctx, "transport", "2024-03", 80)
	require.NoError(t, err)

	add := func(category string, typ models.TransactionType, amount float64, day int) {
		t.Helper()
		_, err := txSvc.Add(ctx, TransactionInput{
			Description: "row",
			Category:    category,
			Type:        typ,
			Currency:    "EUR",
			Amount:      amount,
			Date:        time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	add("food", models.TransactionTypeExpense, 120.50, 5)
	add("food", models.TransactionTypeExpense, 30, 20)
	add("food", models.TransactionTypeIncome, 999, 10)  // income never counts as spending
	add("food", models.TransactionTypeExpense, 500, 31) // March 31 still in range
	add("transport", models.TransactionTypeExpense, 15, 1)

	// outside the month
	_, err = txSvc.Add(ctx, TransactionInput{
		Description: "april", Category: "food", Type: models.TransactionTypeExpense,
		Currency: "EUR", Amount: 77, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	report, err := svc.Report(ctx, "2024-03")
	require.NoError(t, err)
	require.Len(t, report, 2)

	byCategory := map[string]models.BudgetReportRow{}
	for _, row := range report {
		byCategory[row.Category] = row
	}

	food := byCategory["food"]
	assert.Equal(t, 650.50, food.Spent)
	assert.Equal(t, 300.0, food.Limit)
	assert.Equal(t, -350.50, food.Remaining, "overspent budgets go negative")

	transport := byCategory["transport"]
	assert.Equal(t, 15.0, transport.Spent)
	assert.Equal(t, 65.0, transport.Remaining)
}

func TestBudgetReport_InvalidMonth(t *testing.T) {
	svc, _, _ := newBudgetFixture(t)

	_, err := svc.Report(context.Background(), "march")
	assert.Error(t, err)
}

func TestBudgetDelete(t *testing.T) {
	svc, _, _ := newBudgetFixture(t)
	ctx := context.Background()

	b, err := svc.Set(ctx, "food", "2024-03", 100)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), common.ErrorNotFound)
}
