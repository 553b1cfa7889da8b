// Package txcodec bridges plain transaction fields and their encrypted
// envelopes for the two sensitive fields: amount and date.
package txcodec

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/keycrypt"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
)

// Codec encrypts sensitive transaction fields on write and decrypts them on
// read with graceful fallback to the plaintext mirrors.
type Codec struct {
	log logging.Logger
}

func New(log logging.Logger) *Codec {
	return &Codec{log: log}
}

// EncodeForWrite fills tx with the encrypted amount/date envelopes and their
// plaintext mirrors.
//
// The mirrors are kept deliberately: the backend cannot sort or filter
// ciphertext, so ordering and range queries run against them.
func (c *Codec) EncodeForWrite(key []byte, tx *models.Transaction, amount float64, date time.Time) error {
	amountEnv, err := keycrypt.EncryptField(key, formatAmount(amount))
	if err != nil {
		return err
	}
	dateEnv, err := keycrypt.EncryptField(key, formatDate(date))
	if err != nil {
		return err
	}

	tx.Amount = amountEnv.Ciphertext
	tx.AmountIV = amountEnv.IV
	tx.Date = dateEnv.Ciphertext
	tx.DateIV = dateEnv.IV
	tx.AmountPlain = amount
	tx.DatePlain = date.UTC()
	tx.AmountUnverified = false
	tx.DateUnverified = false
	return nil
}

// DecodeForRead decrypts the envelopes of tx in place, overwriting the
// mirror fields with the decrypted values.
//
// It never fails: a field whose envelope is absent passes through unchanged
// (records created before encryption existed), and a field whose envelope
// cannot be decrypted or parsed keeps its mirror value, gets its Unverified
// flag set, and a warning is logged. One corrupted record must not make the
// whole transaction list unusable.
func (c *Codec) DecodeForRead(ctx context.Context, key []byte, tx *models.Transaction) {
	if env := tx.AmountEnvelope(); !env.IsZero() {
		if plaintext, err := keycrypt.DecryptField(key, env); err != nil {
			c.warnFallback(ctx, tx, "amount", err)
			tx.AmountUnverified = true
		} else if amount, perr := strconv.ParseFloat(plaintext, 64); perr != nil {
			c.warnFallback(ctx, tx, "amount", perr)
			tx.AmountUnverified = true
		} else {
			tx.AmountPlain = amount
		}
	}

	if env := tx.DateEnvelope(); !env.IsZero() {
		if plaintext, err := keycrypt.DecryptField(key, env); err != nil {
			c.warnFallback(ctx, tx, "date", err)
			tx.DateUnverified = true
		} else if date, perr := time.Parse(time.RFC3339Nano, plaintext); perr != nil {
			c.warnFallback(ctx, tx, "date", perr)
			tx.DateUnverified = true
		} else {
			tx.DatePlain = date
		}
	}
}

// DecodeAll runs DecodeForRead over a slice in place.
func (c *Codec) DecodeAll(ctx context.Context, key []byte, txs []models.Transaction) {
	for i := range txs {
		c.DecodeForRead(ctx, key, &txs[i])
	}
}

func (c *Codec) warnFallback(ctx context.Context, tx *models.Transaction, field string, err error) {
	c.log.Warn(ctx, "field decryption failed, using plaintext mirror",
		"transaction_id", tx.ID, "field", field, "error", err)
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func formatDate(date time.Time) string {
	return date.UTC().Format(time.RFC3339Nano)
}
