package models

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn entry. Assistant messages that logged an expense carry it.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Expense   *Expense  `json:"expense,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
