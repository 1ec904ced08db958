package service

import (
	"context"
	"testing"

	"finanzas-chat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_LogsExpense(t *testing.T) {
	client := &fakeCompletionClient{reply: routedReply("Transporte", "¡Anotado tu taxi en Transporte!")}
	o := newTestOrchestrator(client)

	turn := o.Process(context.Background(), "Gasté 10 soles en taxi", nil)

	require.NotNil(t, turn.Expense)
	assert.Equal(t, 10.0, turn.Expense.Amount)
	assert.Equal(t, "taxi", turn.Expense.Description)
	assert.Equal(t, models.CategoryTransport, turn.Expense.Category)
	assert.Equal(t, fixedNow, turn.Expense.Timestamp)
	assert.NotEmpty(t, turn.Expense.ID)

	assert.Equal(t, models.RoleUser, turn.User.Role)
	assert.Equal(t, "Gasté 10 soles en taxi", turn.User.Content)
	assert.Nil(t, turn.User.Expense)

	assert.Equal(t, models.RoleAssistant, turn.Assistant.Role)
	assert.Equal(t, "¡Anotado tu taxi en Transporte!", turn.Assistant.Content)
	require.NotNil(t, turn.Assistant.Expense)
	assert.Equal(t, *turn.Expense, *turn.Assistant.Expense)
	assert.NotEqual(t, turn.User.ID, turn.Assistant.ID)

	assert.Len(t, client.Prompts(), 2)
}

func TestProcess_GeneralMessage(t *testing.T) {
	client := &fakeCompletionClient{reply: replyWith("¡Hola! Estoy bien, ¿registramos un gasto?")}
	o := newTestOrchestrator(client)

	turn := o.Process(context.Background(), "Hola, como estas?", nil)

	assert.Nil(t, turn.Expense)
	assert.Nil(t, turn.Assistant.Expense)
	assert.Equal(t, "¡Hola! Estoy bien, ¿registramos un gasto?", turn.Assistant.Content)

	prompts := client.Prompts()
	require.Len(t, prompts, 1)
	assert.NotContains(t, prompts[0], "clasifícalo")
}

func TestProcess_ServiceDown(t *testing.T) {
	client := &fakeCompletionClient{reply: failWith(errServiceDown)}
	o := newTestOrchestrator(client)

	turn := o.Process(context.Background(), "Gasté 10 soles en taxi", nil)

	require.NotNil(t, turn.Expense)
	assert.Equal(t, models.CategoryOther, turn.Expense.Category)
	assert.Equal(t, "Gasto registrado: S/10.00 en taxi (Otros)", turn.Assistant.Content)

	general := o.Process(context.Background(), "¿Qué tal?", []models.Expense{*turn.Expense})
	assert.Nil(t, general.Expense)
	assert.Equal(t, generalFallback, general.Assistant.Content)
}

func TestProcess_ShorthandAmount(t *testing.T) {
	client := &fakeCompletionClient{reply: routedReply("Alimentación", "Listo.")}
	o := newTestOrchestrator(client)

	turn := o.Process(context.Background(), "S/ 12.50 en menú del día", nil)

	require.NotNil(t, turn.Expense)
	assert.Equal(t, 12.5, turn.Expense.Amount)
	assert.Equal(t, "menú del día", turn.Expense.Description)
	assert.Equal(t, models.CategoryFood, turn.Expense.Category)
}

func TestProcess_UnknownCategoryFallsBackToOther(t *testing.T) {
	client := &fakeCompletionClient{reply: routedReply("Mascotas", "Listo.")}
	o := newTestOrchestrator(client)

	turn := o.Process(context.Background(), "20 soles en comida para el perro", nil)

	require.NotNil(t, turn.Expense)
	assert.Equal(t, models.CategoryOther, turn.Expense.Category)
}
