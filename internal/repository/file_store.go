package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"finanzas-chat/internal/models"

	"go.uber.org/zap"
)

// FileStore keeps the expense collection in a single JSON file. Each Save
// rewrites the file through a temp file and rename.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

func (s *FileStore) Load(ctx context.Context) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("Expense file not found, starting empty", zap.String("path", s.path))
		return []models.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read expense file: %w", err)
	}

	if len(data) == 0 {
		return []models.Expense{}, nil
	}

	expenses, err := DecodeExpensesJSON(data, s.logger)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Expenses loaded", zap.String("path", s.path), zap.Int("count", len(expenses)))
	return expenses, nil
}

func (s *FileStore) Save(ctx context.Context, expenses []models.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeExpensesJSON(expenses)
	if err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".expenses-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write expenses: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace expense file: %w", err)
	}

	s.logger.Debug("Expenses saved", zap.String("path", s.path), zap.Int("count", len(expenses)))
	return nil
}
