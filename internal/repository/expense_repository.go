package repository

import (
	"context"
	"fmt"

	"finanzas-chat/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var expenseColumns = []string{"id", "position", "amount", "description", "category", "created_at"}

// insertBatchSize keeps each INSERT under Postgres' 65535 bind parameter limit.
const insertBatchSize = 1000

// ExpenseRepository stores the expense collection in Postgres. Save replaces
// the whole collection inside one transaction.
type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func buildSelectExpensesQuery() (string, []interface{}, error) {
	return squirrel.Select(expenseColumns...).
		From("expenses").
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// buildInsertExpensesQuery inserts expenses with positions starting at offset.
func buildInsertExpensesQuery(expenses []models.Expense, offset int) (string, []interface{}, error) {
	builder := squirrel.Insert("expenses").
		Columns(expenseColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for i, e := range expenses {
		builder = builder.Values(e.ID, offset+i, e.Amount, e.Description, string(e.Category), e.Timestamp)
	}

	return builder.ToSql()
}

func (r *ExpenseRepository) Load(ctx context.Context) ([]models.Expense, error) {
	sql, args, err := buildSelectExpensesQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e        models.Expense
			position int
			category string
		)
		if err := rows.Scan(&e.ID, &position, &e.Amount, &e.Description, &category, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Category = models.Category(category).OrOther()
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}

	return expenses, nil
}

func (r *ExpenseRepository) Save(ctx context.Context, expenses []models.Expense) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.replaceAll(ctx, tx, expenses); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit expenses: %w", err)
	}

	r.logger.Debug("Expenses saved", zap.Int("count", len(expenses)))
	return nil
}

func (r *ExpenseRepository) replaceAll(ctx context.Context, tx pgx.Tx, expenses []models.Expense) error {
	if _, err := tx.Exec(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	for start := 0; start < len(expenses); start += insertBatchSize {
		end := min(start+insertBatchSize, len(expenses))

		sql, args, err := buildInsertExpensesQuery(expenses[start:end], start)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert expenses: %w", err)
		}
	}

	return nil
}
