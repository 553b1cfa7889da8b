// Package csvx parses bank/export CSV files into transaction rows ready for
// encoding and persistence.
package csvx

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
)

// Row is one successfully parsed CSV record.
type Row struct {
	Description string
	Category    string
	Type        models.TransactionType
	Currency    string
	Amount      float64
	Date        time.Time
}

// DefaultCurrency is used when the file has no currency column.
const DefaultCurrency = "USD"

var dateLayouts = []string{"2006-01-02", "01/02/2006", time.RFC3339}

var errMissingHeader = errors.New("csv is missing required columns")

// Parse reads CSV data with a header row and returns the parsed rows plus
// the number of records skipped.
//
// Required columns (case-insensitive): date, description, amount.
// Optional: category, type, currency. When the type column is absent, the
// sign of the amount decides: negative is an expense, positive an income.
// The stored amount is always the absolute value.
//
// Invalid records (bad date, bad amount, empty description) are skipped with
// a warning rather than failing the whole import.
func Parse(ctx context.Context, r io.Reader, log logging.Logger) ([]Row, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to read csv header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"date", "description", "amount"} {
		if _, ok := colIndex[required]; !ok {
			return nil, 0, fmt.Errorf("%w: %s", errMissingHeader, required)
		}
	}

	var rows []Row
	var skipped int

	for {
		record, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, 0, fmt.Errorf("failed to read csv record: %w", readErr)
		}

		row, ok := parseRecord(ctx, record, colIndex, log)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// ParseFile opens path and runs Parse on its contents.
func ParseFile(ctx context.Context, path string, log logging.Logger) ([]Row, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()
	return Parse(ctx, file, log)
}

func parseRecord(ctx context.Context, record []string, colIndex map[string]int, log logging.Logger) (Row, bool) {
	description := safeGet(record, colIndex, "description")
	if description == "" {
		log.Warn(ctx, "skipping record with empty description")
		return Row{}, false
	}

	dateStr := safeGet(record, colIndex, "date")
	date, err := parseDate(dateStr)
	if err != nil {
		log.Warn(ctx, "skipping record with invalid date", "value", dateStr)
		return Row{}, false
	}

	amountStr := safeGet(record, colIndex, "amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		log.Warn(ctx, "skipping record with invalid amount", "value", amountStr)
		return Row{}, false
	}

	txType := models.TransactionType(strings.ToLower(safeGet(record, colIndex, "type")))
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		if amount < 0 {
			txType = models.TransactionTypeExpense
		} else {
			txType = models.TransactionTypeIncome
		}
	}

	category := safeGet(record, colIndex, "category")
	if category == "" {
		category = "uncategorized"
	}

	currency := strings.ToUpper(safeGet(record, colIndex, "currency"))
	if currency == "" {
		currency = DefaultCurrency
	}

	return Row{
		Description: description,
		Category:    category,
		Type:        txType,
		Currency:    currency,
		Amount:      math.Abs(amount),
		Date:        date,
	}, true
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

func safeGet(record []string, colIndex map[string]int, name string) string {
	idx, ok := colIndex[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
