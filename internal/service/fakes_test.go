package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"finanzas-chat/internal/models"

	"go.uber.org/zap"
)

type fakeCompletionClient struct {
	provider string
	reply    func(prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (f *fakeCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.reply(prompt)
}

func (f *fakeCompletionClient) Provider() string {
	if f.provider == "" {
		return ProviderGemini
	}
	return f.provider
}

func (f *fakeCompletionClient) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func replyWith(text string) func(string) (string, error) {
	return func(string) (string, error) { return text, nil }
}

func failWith(err error) func(string) (string, error) {
	return func(string) (string, error) { return "", err }
}

// routedReply answers classification prompts with category and everything else with reply.
func routedReply(category, reply string) func(string) (string, error) {
	return func(prompt string) (string, error) {
		if strings.Contains(prompt, "clasifícalo") {
			return category, nil
		}
		return reply, nil
	}
}

var errServiceDown = errors.New("dial tcp: connection refused")

type fakeExpenseStore struct {
	mu      sync.Mutex
	loaded  []models.Expense
	saved   [][]models.Expense
	loadErr error
	saveErr error
}

func (s *fakeExpenseStore) Load(ctx context.Context) ([]models.Expense, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]models.Expense(nil), s.loaded...), nil
}

func (s *fakeExpenseStore) Save(ctx context.Context, expenses []models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, append([]models.Expense(nil), expenses...))
	return s.saveErr
}

func (s *fakeExpenseStore) Saves() [][]models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

var fixedNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func newTestOrchestrator(client CompletionClient) *Orchestrator {
	logger := zap.NewNop()
	return NewOrchestrator(
		NewCategoryClassifier(client, time.Second, logger),
		NewResponseGenerator(client, time.Second, 5, logger),
		func() time.Time { return fixedNow },
		logger,
	)
}
