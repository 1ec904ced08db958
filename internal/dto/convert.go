package dto

import (
	"time"

	"finanzas-chat/internal/models"
)

func NewExpenseResponse(e *models.Expense) *ExpenseResponse {
	if e == nil {
		return nil
	}
	return &ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    string(e.Category),
		Timestamp:   e.Timestamp.Format(time.RFC3339),
	}
}

func NewMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		Expense:   NewExpenseResponse(m.Expense),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
