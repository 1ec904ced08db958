package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"finanzas-chat/internal/models"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CategoryClassifier asks the completion service to label an expense.
type CategoryClassifier struct {
	client  CompletionClient
	timeout time.Duration
	logger  *zap.Logger
}

func NewCategoryClassifier(client CompletionClient, timeout time.Duration, logger *zap.Logger) *CategoryClassifier {
	return &CategoryClassifier{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

func buildCategoryPrompt(expenseText string) string {
	var list strings.Builder
	for _, c := range models.Categories {
		list.WriteString("- ")
		list.WriteString(string(c))
		list.WriteString("\n")
	}

	return fmt.Sprintf(`Analiza este gasto y clasifícalo en UNA de estas categorías exactas:
%s
Gasto: "%s"

Responde SOLO con el nombre de la categoría, nada más. Ejemplo: "Transporte"`, list.String(), expenseText)
}

// Classify returns the category for expenseText. It always returns a member of
// the category set: unknown answers and failed calls yield Otros, and in the
// latter case the error is returned too so the caller can report it.
func (c *CategoryClassifier) Classify(ctx context.Context, expenseText string) (models.Category, error) {
	answer, err := completeWithTimeout(ctx, c.client, c.timeout, buildCategoryPrompt(expenseText), c.logger)
	if err != nil {
		return models.CategoryOther, fmt.Errorf("failed to classify expense: %w", err)
	}

	category, ok := matchCategory(answer)
	if !ok {
		c.logger.Warn("Classifier answered outside the category set",
			zap.String("answer", answer),
			zap.String("fallback", string(models.CategoryOther)),
		)
		return models.CategoryOther, nil
	}

	c.logger.Debug("Expense classified",
		zap.String("text", expenseText),
		zap.String("category", string(category)),
	)
	return category, nil
}

// foldLabel lowercases s and strips diacritics so "ALIMENTACION" equals "Alimentación".
func foldLabel(s string) string {
	// Chained transformers keep state, so build one per call.
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// matchCategory tolerates the usual formatting noise around a one-word answer:
// quotes, markdown emphasis, a trailing period, a "Categoría:" prefix.
func matchCategory(answer string) (models.Category, bool) {
	cleaned := strings.TrimSpace(answer)
	if category := models.Category(cleaned); category.IsValid() {
		return category, true
	}

	if idx := strings.Index(cleaned, "\n"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	if idx := strings.LastIndex(cleaned, ":"); idx >= 0 {
		cleaned = cleaned[idx+1:]
	}
	cleaned = strings.Trim(cleaned, " \t\"'`*_.¡!¿?«»“”")

	folded := foldLabel(cleaned)
	for _, c := range models.Categories {
		if foldLabel(string(c)) == folded {
			return c, true
		}
	}

	return "", false
}
