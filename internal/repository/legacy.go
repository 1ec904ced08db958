package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"finanzas-chat/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// flexibleTime accepts RFC 3339 strings and the Unix millisecond numbers
// written by the browser version of the app.
type flexibleTime struct {
	time.Time
}

func (t *flexibleTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		t.Time = parsed
		return nil
	}

	var millis json.Number
	if err := json.Unmarshal(data, &millis); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	ms, err := millis.Int64()
	if err != nil {
		f, ferr := millis.Float64()
		if ferr != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		ms = int64(f)
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

func (t flexibleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// storedExpense is the on-disk form of an expense. Records written before
// categories existed have no category field.
type storedExpense struct {
	ID          string       `json:"id"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	Category    string       `json:"category,omitempty"`
	Timestamp   flexibleTime `json:"timestamp"`
}

func toStoredExpense(e models.Expense) storedExpense {
	return storedExpense{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    string(e.Category),
		Timestamp:   flexibleTime{e.Timestamp},
	}
}

// toExpense migrates a stored record: missing or unknown categories become
// Otros and missing ids get a fresh one.
func (s storedExpense) toExpense() models.Expense {
	id := strings.TrimSpace(s.ID)
	if id == "" {
		id = uuid.New().String()
	}
	return models.Expense{
		ID:          id,
		Amount:      s.Amount,
		Description: strings.TrimSpace(s.Description),
		Category:    models.Category(strings.TrimSpace(s.Category)).OrOther(),
		Timestamp:   s.Timestamp.Time,
	}
}

// validateExpense reports why a migrated record cannot be kept, or nil.
func validateExpense(e models.Expense) error {
	if e.Description == "" {
		return errors.New("description is empty")
	}
	if e.Amount < 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return fmt.Errorf("amount %v is not a valid non-negative number", e.Amount)
	}
	return nil
}

// DecodeExpensesJSON reads a JSON array of expenses, including exports from
// the browser version, migrating legacy records. Records with a blank
// description or a negative amount are skipped and logged.
func DecodeExpensesJSON(data []byte, logger *zap.Logger) ([]models.Expense, error) {
	var stored []storedExpense
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode expenses: %w", err)
	}

	expenses := make([]models.Expense, 0, len(stored))
	for i, s := range stored {
		e := s.toExpense()
		if err := validateExpense(e); err != nil {
			logger.Warn("Skipping invalid stored expense",
				zap.Int("index", i),
				zap.String("expense_id", e.ID),
				zap.Error(err),
			)
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func EncodeExpensesJSON(expenses []models.Expense) ([]byte, error) {
	stored := make([]storedExpense, 0, len(expenses))
	for _, e := range expenses {
		stored = append(stored, toStoredExpense(e))
	}
	return json.MarshalIndent(stored, "", "  ")
}
