package budgets

import (
	"context"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
)

// Repository describes storage operations for Budget documents.
type Repository interface {
	// Upsert inserts or updates a budget, keyed by (user, category, month).
	// On update the stored identity and creation time win; b is refreshed
	// from the stored document so callers see the persisted id.
	Upsert(ctx context.Context, b *models.Budget) error

	// ListByUserMonth returns all of the user's budgets for a YYYY-MM month.
	ListByUserMonth(ctx context.Context, userID, month string) ([]models.Budget, error)

	// DeleteByID removes one of the user's budgets.
	DeleteByID(ctx context.Context, userID, id string) error
}
