package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finanzas-chat/internal/models"

	"go.uber.org/zap"
)

const generalFallback = `No pude entender ese gasto. Intenta escribir algo como "Gasté 10 soles en taxi" o "15 soles en almuerzo".`

// ResponseGenerator produces the assistant's conversational replies.
type ResponseGenerator struct {
	client         CompletionClient
	timeout        time.Duration
	recentExpenses int
	logger         *zap.Logger
}

func NewResponseGenerator(client CompletionClient, timeout time.Duration, recentExpenses int, logger *zap.Logger) *ResponseGenerator {
	return &ResponseGenerator{
		client:         client,
		timeout:        timeout,
		recentExpenses: recentExpenses,
		logger:         logger,
	}
}

// RespondToExpense confirms a freshly logged expense. It never fails: when the
// completion service does, a confirmation built from the expense is returned.
func (g *ResponseGenerator) RespondToExpense(ctx context.Context, expenseText string, expense models.Expense) string {
	prompt := fmt.Sprintf(`El usuario registró un gasto: "%s"
Categoría detectada: %s

Genera una respuesta breve y amigable confirmando el registro (máximo 1-2 oraciones).
Menciona la categoría de forma natural.`, expenseText, expense.Category)

	reply, err := completeWithTimeout(ctx, g.client, g.timeout, prompt, g.logger)
	if err != nil {
		fallback := expenseConfirmation(expense)
		if completionErrorKind(err) == ErrorKindAuthInvalid {
			return fallback + "\n\n" + credentialsRemediation(g.client.Provider())
		}
		return fallback
	}

	return reply
}

// RespondGeneral answers a message that is not an expense, giving the model the
// user's spending so far as context.
func (g *ResponseGenerator) RespondGeneral(ctx context.Context, message string, history []models.Expense) string {
	prompt := fmt.Sprintf(`Eres un asistente financiero amigable en español llamado FinanzasBot. Tu trabajo es:
1. Ayudar a registrar gastos cuando el usuario los menciona (ej: "Gasté 10 soles en taxi")
2. Responder preguntas sobre finanzas personales
3. Analizar los gastos del usuario y dar consejos breves y útiles

%s

Mensaje del usuario: "%s"

Responde de manera amigable y concisa (máximo 2-3 oraciones). Si es un saludo o pregunta general, responde naturalmente. Si están preguntando sobre sus finanzas, usa los datos de arriba.`,
		g.buildExpenseContext(history), message)

	reply, err := completeWithTimeout(ctx, g.client, g.timeout, prompt, g.logger)
	if err != nil {
		if completionErrorKind(err) == ErrorKindAuthInvalid {
			return credentialsRemediation(g.client.Provider())
		}
		return generalFallback
	}

	return reply
}

// buildExpenseContext summarises history: grand total, per-category subtotals
// and the most recent expenses.
func (g *ResponseGenerator) buildExpenseContext(history []models.Expense) string {
	if len(history) == 0 {
		return "El usuario no ha registrado gastos aún."
	}

	var builder strings.Builder
	builder.WriteString("Gastos actuales del usuario:\n")
	builder.WriteString(fmt.Sprintf("Total gastado: %s\n", formatSoles(Total(history))))

	byCategory := ByCategory(history)
	parts := make([]string, 0, len(byCategory))
	for _, ct := range byCategory {
		parts = append(parts, fmt.Sprintf("%s: %s", ct.Category, formatSoles(ct.Total)))
	}
	builder.WriteString("Gastos por categoría: ")
	builder.WriteString(strings.Join(parts, ", "))
	builder.WriteString("\n")

	recent := history
	if g.recentExpenses >= 0 && len(recent) > g.recentExpenses {
		recent = recent[len(recent)-g.recentExpenses:]
	}
	if len(recent) > 0 {
		builder.WriteString("\nÚltimos gastos:\n")
		for _, e := range recent {
			builder.WriteString(fmt.Sprintf("- %s en %s (%s)\n", formatSoles(e.Amount), e.Description, e.Category))
		}
	}

	return strings.TrimRight(builder.String(), "\n")
}

func expenseConfirmation(expense models.Expense) string {
	return fmt.Sprintf("Gasto registrado: %s en %s (%s)", formatSoles(expense.Amount), expense.Description, expense.Category)
}

func credentialsRemediation(provider string) string {
	switch provider {
	case ProviderGigaChat:
		return "Tus credenciales de GigaChat no son válidas o no tienen acceso al modelo. Revisa la clave de autorización en GIGACHAT_API_KEY desde https://developers.sber.ru/studio"
	default:
		return "Tu API key no tiene acceso a los modelos de Gemini. Por favor genera una nueva API key en https://aistudio.google.com/app/apikey y configúrala en GEMINI_API_KEY."
	}
}
