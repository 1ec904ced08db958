package service

import (
	"context"
	"fmt"

	"finanzas-chat/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const ProviderGigaChat = "gigachat"

// GigaChatClient implements CompletionClient on top of Sber GigaChat.
type GigaChatClient struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	config *config.GigaChatConfig
	logger *zap.Logger
}

// buildSystemInstruction sets the assistant persona shared by every prompt.
func buildSystemInstruction() string {
	return `Eres FinanzasBot, un asistente financiero amigable que responde siempre en español.

Tus tareas:
1. Clasificar gastos personales en una categoría exacta cuando se te pida.
2. Confirmar el registro de gastos de forma breve y natural.
3. Responder preguntas sobre finanzas personales usando solo los datos que se te entregan.

Reglas:
- Los montos están en soles peruanos (S/).
- Cuando se te pida una sola palabra o categoría, responde solo con eso, sin explicaciones.
- No inventes gastos ni montos que no aparezcan en el contexto.`
}

func NewGigaChatClient(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GIGACHAT_API_KEY environment variable not set")
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	logger.Info("Using GigaChat model", zap.String("model", cfg.Model))

	return &GigaChatClient{
		client: client,
		model:  model,
		config: cfg,
		logger: logger,
	}, nil
}

func (c *GigaChatClient) Provider() string {
	return ProviderGigaChat
}

func (c *GigaChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		kind := classifyErrorMessage(err.Error())
		if ctx.Err() != nil {
			kind = ErrorKindUnavailable
		}
		return "", &CompletionError{Kind: kind, Provider: ProviderGigaChat, Err: fmt.Errorf("failed to generate response: %w", err)}
	}

	if len(resp.Choices) == 0 {
		return "", &CompletionError{Kind: ErrorKindUnknown, Provider: ProviderGigaChat, Err: ErrEmptyCompletion}
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *GigaChatClient) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
