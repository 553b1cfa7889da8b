package csvx

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func TestParse_FullHeader(t *testing.T) {
	data := `date,description,category,type,amount,currency
2024-03-15,Groceries,food,expense,42.50,EUR
2024-03-16,Salary,salary,income,2500,EUR
`
	rows, skipped, err := Parse(context.Background(), strings.NewReader(data), testLogger())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, rows, 2)

	assert.Equal(t, "Groceries", rows[0].Description)
	assert.Equal(t, "food", rows[0].Category)
	assert.Equal(t, models.TransactionTypeExpense, rows[0].Type)
	assert.Equal(t, "EUR", rows[0].Currency)
	assert.Equal(t, 42.50, rows[0].Amount)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), rows[0].Date)

	assert.Equal(t, models.TransactionTypeIncome, rows[1].Type)
	assert.Equal(t, 2500.0, rows[1].Amount)
}

func TestParse_TypeInferredFromSign(t *testing.T) {
	data := `Date,Description,Amount
01/15/2024,Coffee,-3.75
01/16/2024,Refund,12.00
`
	rows, skipped, err := Parse(context.Background(), strings.NewReader(data), testLogger())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, rows, 2)

	assert.Equal(t, models.TransactionTypeExpense, rows[0].Type)
	assert.Equal(t, 3.75, rows[0].Amount, "stored amount is the absolute value")
	assert.Equal(t, models.TransactionTypeIncome, rows[1].Type)
}

func TestParse_DefaultsForOptionalColumns(t *testing.T) {
	data := `date,description,amount
2024-03-15,Groceries,-42.50
`
	rows, _, err := Parse(context.Background(), strings.NewReader(data), testLogger())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "uncategorized", rows[0].Category)
	assert.Equal(t, DefaultCurrency, rows[0].Currency)
}

func TestParse_SkipsInvalidRecords(t *testing.T) {
	data := `date,description,amount
2024-03-15,Valid,10
not-a-date,BadDate,10
2024-03-15,,10
2024-03-15,BadAmount,abc
2024-03-16,AlsoValid,20
`
	rows, skipped, err := Parse(context.Background(), strings.NewReader(data), testLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, rows, 2)
	assert.Equal(t, "Valid", rows[0].Description)
	assert.Equal(t, "AlsoValid", rows[1].Description)
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	data := `description,amount
Groceries,10
`
	_, _, err := Parse(context.Background(), strings.NewReader(data), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestParse_EmptyInput(t *testing.T) {
	rows, skipped, err := Parse(context.Background(), strings.NewReader(""), testLogger())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, rows)
}

func TestParseFile_NotFound(t *testing.T) {
	_, _, err := ParseFile(context.Background(), "does/not/exist.csv", testLogger())
	require.Error(t, err)
}
