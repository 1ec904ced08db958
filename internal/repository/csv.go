package repository

import (
	"fmt"
	"io"
	"strings"
	"time"

	"finanzas-chat/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// expenseCSVRow is one line of the CSV export.
type expenseCSVRow struct {
	ID          string  `csv:"id"`
	Date        string  `csv:"date"`
	Amount      float64 `csv:"amount"`
	Description string  `csv:"description"`
	Category    string  `csv:"category"`
}

// WriteExpensesCSV writes expenses with a header row. Dates are RFC 3339 in loc.
func WriteExpensesCSV(w io.Writer, expenses []models.Expense, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	rows := make([]*expenseCSVRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, &expenseCSVRow{
			ID:          e.ID,
			Date:        e.Timestamp.In(loc).Format(time.RFC3339),
			Amount:      e.Amount,
			Description: e.Description,
			Category:    string(e.Category),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// ReadExpensesCSV parses a CSV produced by WriteExpensesCSV. Rows with an
// empty description or a negative amount are rejected.
func ReadExpensesCSV(r io.Reader) ([]models.Expense, error) {
	var rows []*expenseCSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	expenses := make([]models.Expense, 0, len(rows))
	for i, row := range rows {
		description := strings.TrimSpace(row.Description)
		if description == "" {
			return nil, fmt.Errorf("row %d: description is empty", i+1)
		}
		if row.Amount < 0 {
			return nil, fmt.Errorf("row %d: amount %v is negative", i+1, row.Amount)
		}

		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(row.Date))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i+1, row.Date, err)
		}

		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = uuid.New().String()
		}

		expenses = append(expenses, models.Expense{
			ID:          id,
			Amount:      row.Amount,
			Description: description,
			Category:    models.Category(strings.TrimSpace(row.Category)).OrOther(),
			Timestamp:   ts,
		})
	}

	return expenses, nil
}
