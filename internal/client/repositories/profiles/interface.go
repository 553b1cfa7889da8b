package profiles

import (
	"context"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
)

// Repository describes access to user profile documents in the remote store.
// The profile carries the backup copy of the exported encryption key.
type Repository interface {
	// Get returns the user's profile, or common.ErrorNotFound.
	Get(ctx context.Context, userID string) (*models.Profile, error)

	// SaveKeyBackup merges the exported key and backup timestamp into the
	// profile document, preserving unrelated profile fields. The document is
	// created when absent.
	SaveKeyBackup(ctx context.Context, userID, exportedKey string, at time.Time) error
}
