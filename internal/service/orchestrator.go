package service

import (
	"context"
	"time"

	"finanzas-chat/internal/models"
	"finanzas-chat/internal/parser"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Turn is the outcome of one user message: the user's entry, exactly one
// assistant reply and, when the message logged a spend, the new expense.
type Turn struct {
	User      models.Message
	Assistant models.Message
	Expense   *models.Expense
}

// Orchestrator decides how to answer a single chat message. It holds no
// conversation state; the expense history is passed in by the caller.
type Orchestrator struct {
	classifier *CategoryClassifier
	responder  *ResponseGenerator
	now        func() time.Time
	logger     *zap.Logger
}

func NewOrchestrator(classifier *CategoryClassifier, responder *ResponseGenerator, now func() time.Time, logger *zap.Logger) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		classifier: classifier,
		responder:  responder,
		now:        now,
		logger:     logger,
	}
}

// Process answers text. Completion failures degrade to fallback replies and
// the Otros category; they never prevent the reply or the expense.
func (o *Orchestrator) Process(ctx context.Context, text string, history []models.Expense) Turn {
	turn := Turn{
		User: o.newMessage(models.RoleUser, text, nil),
	}

	parsed, ok := parser.Parse(text)
	if !ok {
		o.logger.Debug("No expense detected, answering as conversation")
		reply := o.responder.RespondGeneral(ctx, text, history)
		turn.Assistant = o.newMessage(models.RoleAssistant, reply, nil)
		return turn
	}

	category, err := o.classifier.Classify(ctx, text)
	if err != nil {
		o.logger.Warn("Classification failed, using fallback category",
			zap.String("category", string(category)),
			zap.Error(err),
		)
	}

	expense := models.Expense{
		ID:          uuid.New().String(),
		Amount:      parsed.Amount,
		Description: parsed.Description,
		Category:    category,
		Timestamp:   o.now(),
	}

	reply := o.responder.RespondToExpense(ctx, text, expense)

	o.logger.Info("Expense logged",
		zap.String("expense_id", expense.ID),
		zap.Float64("amount", expense.Amount),
		zap.String("category", string(expense.Category)),
	)

	turn.Expense = &expense
	turn.Assistant = o.newMessage(models.RoleAssistant, reply, &expense)
	return turn
}

func (o *Orchestrator) newMessage(role models.Role, content string, expense *models.Expense) models.Message {
	return models.Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Expense:   expense,
		CreatedAt: o.now(),
	}
}
