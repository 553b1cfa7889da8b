// Package models defines client-side data models used by the BudgetKeeper CLI.
package models

import (
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/keycrypt"
)

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a budgeting record stored in the remote document database.
//
// The amount and date fields are sensitive: they are persisted as encrypted
// envelopes (ciphertext + iv, both base64 text) alongside plaintext mirrors.
// The mirrors exist because the backend cannot sort or filter ciphertext;
// ordering and range queries run against amount_plain/date_plain. This is a
// documented confidentiality trade-off, not an accident.
//
// A record is never partially updated: edits replace the whole document.
type Transaction struct {
	ID          string          `bson:"_id"`
	UserID      string          `bson:"user_id"`
	Description string          `bson:"description"`
	Category    string          `bson:"category"`
	Type        TransactionType `bson:"type"`
	Currency    string          `bson:"currency"`

	// Encrypted envelope halves. Empty on legacy records created before
	// encryption existed.
	Amount   string `bson:"amount,omitempty"`
	AmountIV string `bson:"amount_iv,omitempty"`
	Date     string `bson:"date,omitempty"`
	DateIV   string `bson:"date_iv,omitempty"`

	// Plaintext mirrors used for server-side sorting/filtering, and as the
	// fallback value when an envelope cannot be decrypted.
	AmountPlain float64   `bson:"amount_plain"`
	DatePlain   time.Time `bson:"date_plain"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`

	// Unverified flags mark fields whose envelope failed integrity checks
	// and whose value therefore comes from the plaintext mirror. They are
	// display-only and never persisted.
	AmountUnverified bool `bson:"-"`
	DateUnverified   bool `bson:"-"`
}

// AmountEnvelope returns the encrypted amount halves as a keycrypt.Envelope.
func (t *Transaction) AmountEnvelope() keycrypt.Envelope {
	return keycrypt.Envelope{Ciphertext: t.Amount, IV: t.AmountIV}
}

// DateEnvelope returns the encrypted date halves as a keycrypt.Envelope.
func (t *Transaction) DateEnvelope() keycrypt.Envelope {
	return keycrypt.Envelope{Ciphertext: t.Date, IV: t.DateIV}
}

// Validate checks the plain attributes a caller must always supply.
func (t *Transaction) Validate() error {
	if t.UserID == "" || t.Description == "" || t.Category == "" {
		return common.ErrInvalidTransaction
	}
	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return common.ErrInvalidTransaction
	}
	if t.Currency == "" {
		return common.ErrInvalidTransaction
	}
	return nil
}
