// Package common defines shared constants, utility helpers and sentinel
// errors used across BudgetKeeper components. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Encryption subsystem errors.
	ErrCryptoUnavailable = errors.New("crypto unavailable")
	ErrInvalidKeyFormat  = errors.New("invalid key format")
	ErrDecryptionFailed  = errors.New("decryption failed")

	// Session lifecycle errors.
	ErrSessionNotReady = errors.New("session not ready")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Validation errors.
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidBudget      = errors.New("invalid budget")
)
