package dto

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Timestamp   string  `json:"timestamp"`
}

type MessageResponse struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Expense   *ExpenseResponse `json:"expense,omitempty"`
	CreatedAt string           `json:"created_at"`
}

type ChatResponse struct {
	UserMessage      MessageResponse  `json:"user_message"`
	AssistantMessage MessageResponse  `json:"assistant_message"`
	Expense          *ExpenseResponse `json:"expense,omitempty"`
}
