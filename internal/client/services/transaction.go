// Package services contains application services for the BudgetKeeper
// client: transaction entry/import, budget tracking, and analytics, all
// running on top of the session's encryption state.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/csvx"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/repositories/transactions"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/session"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/txcodec"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/google/uuid"
)

// TransactionInput carries the plain attributes of a transaction write.
type TransactionInput struct {
	Description string
	Category    string
	Type        models.TransactionType
	Currency    string
	Amount      float64
	Date        time.Time
}

// TransactionService defines transaction operations for the CLI.
//
// Contract:
//   - Writes require a Ready session: the sensitive fields are encrypted
//     before they leave the process, so no key means no write.
//   - Reads degrade gracefully: without a key the plaintext mirrors are
//     returned as-is; with a key, envelopes are decrypted and failures fall
//     back per field.
type TransactionService interface {
	Add(ctx context.Context, in TransactionInput) (*models.Transaction, error)
	Update(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Transaction, error)
	Import(ctx context.Context, rows []csvx.Row) (int, error)
}

type transactionService struct {
	sess  *session.Session
	repo  transactions.Repository
	codec *txcodec.Codec
	log   logging.Logger
	now   func() time.Time
}

func NewTransactionService(sess *session.Session, repo transactions.Repository, codec *txcodec.Codec, log logging.Logger) TransactionService {
	return &transactionService{sess: sess, repo: repo, codec: codec, log: log, now: time.Now}
}

func (s *transactionService) Add(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	key, err := s.sess.Key()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tx := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      s.sess.UserID(),
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Currency:    in.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.codec.EncodeForWrite(key, tx, in.Amount, in.Date); err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	if err := s.repo.Save(ctx, tx); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return tx, nil
}

// Update replaces the whole record: envelopes are never edited in place, a
// changed value gets a brand-new envelope.
func (s *transactionService) Update(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error) {
	key, err := s.sess.Key()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, s.sess.UserID(), id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving transaction: %w", err)
	}

	tx := &models.Transaction{
		ID:          existing.ID,
		UserID:      existing.UserID,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Currency:    in.Currency,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   s.now().UTC(),
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.codec.EncodeForWrite(key, tx, in.Amount, in.Date); err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	if err := s.repo.Save(ctx, tx); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, s.sess.UserID(), id); err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}
	return nil
}

func (s *transactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, s.sess.UserID(), id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving transaction: %w", err)
	}
	if key, kerr := s.sess.Key(); kerr == nil {
		s.codec.DecodeForRead(ctx, key, tx)
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.repo.ListByUser(ctx, s.sess.UserID())
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	s.decodeAll(ctx, rows)
	return rows, nil
}

func (s *transactionService) ListBetween(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	rows, err := s.repo.ListByUserBetween(ctx, s.sess.UserID(), from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	s.decodeAll(ctx, rows)
	return rows, nil
}

// Import persists parsed CSV rows, each encoded like a manual entry.
// It stops at the first storage error and reports how many rows made it.
func (s *transactionService) Import(ctx context.Context, rows []csvx.Row) (int, error) {
	for n, row := range rows {
		_, err := s.Add(ctx, TransactionInput{
			Description: row.Description,
			Category:    row.Category,
			Type:        row.Type,
			Currency:    row.Currency,
			Amount:      row.Amount,
			Date:        row.Date,
		})
		if err != nil {
			return n, fmt.Errorf("import stopped at row %d: %w", n+1, err)
		}
	}
	return len(rows), nil
}

// decodeAll decrypts when a key is available; in any other session state the
// mirrors pass through untouched.
func (s *transactionService) decodeAll(ctx context.Context, rows []models.Transaction) {
	key, err := s.sess.Key()
	if err != nil {
		return
	}
	s.codec.DecodeAll(ctx, key, rows)
}
