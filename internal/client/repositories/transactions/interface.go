package transactions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
)

// Repository describes storage operations for Transaction documents in the
// remote store. All reads are scoped to a single user; ordering and range
// filtering rely on the plaintext mirror fields, since the encrypted
// envelopes are not sortable server-side.
type Repository interface {
	// Save inserts a new transaction or replaces an existing one by id.
	// Records are never partially updated.
	Save(ctx context.Context, tx *models.Transaction) error

	// GetByID returns one of the user's transactions, or common.ErrorNotFound.
	GetByID(ctx context.Context, userID, id string) (*models.Transaction, error)

	// ListByUser returns all of the user's transactions, newest first
	// (ordered by the date_plain mirror).
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)

	// ListByUserBetween returns the user's transactions with
	// from <= date_plain < to, newest first.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error)

	// DeleteByID removes one of the user's transactions.
	DeleteByID(ctx context.Context, userID, id string) error
}
