package repository

import (
	"context"
	"fmt"

	"finanzas-chat/internal/models"
	"finanzas-chat/pkg/config"
	"finanzas-chat/pkg/postgres"

	"go.uber.org/zap"
)

// Store is implemented by FileStore and ExpenseRepository.
type Store interface {
	Load(ctx context.Context) ([]models.Expense, error)
	Save(ctx context.Context, expenses []models.Expense) error
}

// OpenStore builds the store selected by cfg.Storage.Driver. The returned
// close function releases the database pool, if any.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		logger.Info("Using file storage", zap.String("path", cfg.Storage.FilePath))
		return NewFileStore(cfg.Storage.FilePath, logger), func() {}, nil

	case config.StorageDriverPostgres:
		if err := postgres.RunMigrations(&cfg.Database, logger); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		db, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return NewExpenseRepository(db, logger), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// MergeExpenses appends the incoming expenses whose ID is not already present,
// keeping the order of both slices. It returns the merged collection and the
// number of expenses added.
func MergeExpenses(existing, incoming []models.Expense) ([]models.Expense, int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]models.Expense, 0, len(existing)+len(incoming))
	for _, e := range existing {
		seen[e.ID] = struct{}{}
		merged = append(merged, e)
	}

	added := 0
	for _, e := range incoming {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		merged = append(merged, e)
		added++
	}

	return merged, added
}
