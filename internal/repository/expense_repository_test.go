package repository

import (
	"testing"
	"time"

	"finanzas-chat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelectExpensesQuery(t *testing.T) {
	sql, args, err := buildSelectExpensesQuery()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, position, amount, description, category, created_at FROM expenses ORDER BY position ASC", sql)
	assert.Empty(t, args)
}

func TestBuildInsertExpensesQuery(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		{ID: "a", Amount: 10, Description: "taxi", Category: models.CategoryTransport, Timestamp: ts},
		{ID: "b", Amount: 4.5, Description: "pan", Category: models.CategoryFood, Timestamp: ts},
	}

	sql, args, err := buildInsertExpensesQuery(expenses, 0)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO expenses (id,position,amount,description,category,created_at) VALUES ($1,$2,$3,$4,$5,$6),($7,$8,$9,$10,$11,$12)",
		sql)
	require.Len(t, args, 12)
	assert.Equal(t, []interface{}{"a", 0, 10.0, "taxi", "Transporte", ts}, args[:6])
	assert.Equal(t, 1, args[7])
	assert.Equal(t, "Alimentación", args[10])
}

func TestBuildInsertExpensesQuery_Offset(t *testing.T) {
	_, args, err := buildInsertExpensesQuery([]models.Expense{{ID: "c", Description: "bus"}}, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, args[1])
}
