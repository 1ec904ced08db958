package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"finanzas-chat/pkg/config"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ProviderGemini = "gemini"

// GeminiClient implements CompletionClient on top of the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)

	logger.Info("Using Gemini model", zap.String("model", cfg.Model))

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (c *GeminiClient) Provider() string {
	return ProviderGemini
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &CompletionError{Kind: geminiErrorKind(err), Provider: ProviderGemini, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &CompletionError{Kind: ErrorKindUnknown, Provider: ProviderGemini, Err: ErrEmptyCompletion}
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}

	return builder.String(), nil
}

func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// geminiErrorKind maps REST, gRPC and plain errors from the SDK to a kind.
func geminiErrorKind(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindUnavailable
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized,
			apiErr.Code == http.StatusForbidden,
			apiErr.Code == http.StatusNotFound:
			return ErrorKindAuthInvalid
		case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "api key"):
			return ErrorKindAuthInvalid
		case apiErr.Code == http.StatusTooManyRequests:
			return ErrorKindRateLimited
		case apiErr.Code >= http.StatusInternalServerError:
			return ErrorKindUnavailable
		}
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.OK && st.Code() != codes.Unknown {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied, codes.NotFound:
			return ErrorKindAuthInvalid
		case codes.InvalidArgument:
			if strings.Contains(strings.ToLower(st.Message()), "api key") {
				return ErrorKindAuthInvalid
			}
		case codes.ResourceExhausted:
			return ErrorKindRateLimited
		case codes.Unavailable, codes.DeadlineExceeded:
			return ErrorKindUnavailable
		}
	}

	return classifyErrorMessage(err.Error())
}
