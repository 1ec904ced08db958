package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"finanzas-chat/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("message is empty")

const welcomeMessage = `¡Hola! Soy tu asistente de finanzas. Escribe tus gastos como "Gasté 10 soles en taxi" y yo los registraré por ti. 💰`

// ExpenseStore persists the whole expense collection. Save overwrites
// everything previously stored.
type ExpenseStore interface {
	Load(ctx context.Context) ([]models.Expense, error)
	Save(ctx context.Context, expenses []models.Expense) error
}

// Session is the single chat session: it owns the expense history and the
// transcript, and serialises turns so appends are never lost.
type Session struct {
	orchestrator *Orchestrator
	store        ExpenseStore
	logger       *zap.Logger

	mu       sync.Mutex
	expenses []models.Expense
	messages []models.Message
}

// NewSession loads the stored history and opens the transcript with a welcome message.
func NewSession(ctx context.Context, orchestrator *Orchestrator, store ExpenseStore, logger *zap.Logger) (*Session, error) {
	expenses, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	logger.Info("Session started", zap.Int("expenses", len(expenses)))

	return &Session{
		orchestrator: orchestrator,
		store:        store,
		logger:       logger,
		expenses:     expenses,
		messages: []models.Message{
			{
				ID:        uuid.New().String(),
				Role:      models.RoleAssistant,
				Content:   welcomeMessage,
				CreatedAt: orchestrator.now(),
			},
		},
	}, nil
}

// Send processes one user message. The only error is ErrEmptyMessage; every
// other failure is absorbed into the reply.
func (s *Session) Send(ctx context.Context, text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]models.Expense, len(s.expenses))
	copy(history, s.expenses)

	turn := s.orchestrator.Process(ctx, text, history)

	s.messages = append(s.messages, turn.User, turn.Assistant)

	if turn.Expense != nil {
		s.expenses = append(s.expenses, *turn.Expense)
		if err := s.store.Save(ctx, s.expenses); err != nil {
			s.logger.Error("Failed to persist expenses",
				zap.String("expense_id", turn.Expense.ID),
				zap.Int("expenses", len(s.expenses)),
				zap.Error(err),
			)
		}
	}

	return turn, nil
}

// Expenses returns a copy of the expense history in insertion order.
func (s *Session) Expenses() []models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
