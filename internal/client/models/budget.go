package models

import (
	"regexp"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
)

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Budget is a monthly spending limit for one category.
// Budgets hold no sensitive values and are stored in plaintext.
type Budget struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Category  string    `bson:"category"`
	Month     string    `bson:"month"` // YYYY-MM
	Limit     float64   `bson:"limit"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (b *Budget) Validate() error {
	if b.UserID == "" || b.Category == "" {
		return common.ErrInvalidBudget
	}
	if !monthRe.MatchString(b.Month) {
		return common.ErrInvalidBudget
	}
	if b.Limit <= 0 {
		return common.ErrInvalidBudget
	}
	return nil
}

// BudgetReportRow is one line of the spent-vs-limit report: a budget joined
// with the decoded transactions that fall into its category and month.
type BudgetReportRow struct {
	Category  string
	Month     string
	Limit     float64
	Spent     float64
	Remaining float64
}
