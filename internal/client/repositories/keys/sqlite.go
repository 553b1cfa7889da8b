package keys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, userID string) (string, error) {
	var exported string
	err := r.db.QueryRowContext(ctx,
		`SELECT exported_key FROM encryption_keys WHERE user_id = ?`, userID).Scan(&exported)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get encryption key for %s: %w", userID, err)
	}
	return exported, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, userID string, exportedKey string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO encryption_keys (user_id, exported_key, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET exported_key = excluded.exported_key, updated_at = CURRENT_TIMESTAMP
	`, userID, exportedKey)
	if err != nil {
		return fmt.Errorf("failed to set encryption key for %s: %w", userID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM encryption_keys WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete encryption key for %s: %w", userID, err)
	}
	return nil
}
