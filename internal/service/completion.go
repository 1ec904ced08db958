package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finanzas-chat/pkg/config"

	"go.uber.org/zap"
)

// CompletionClient is a text-in/text-out language model endpoint.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
}

type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindUnavailable
	ErrorKindAuthInvalid
	ErrorKindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindUnavailable:
		return "unavailable"
	case ErrorKindAuthInvalid:
		return "auth_invalid"
	case ErrorKindRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// CompletionError is returned by every CompletionClient failure.
type CompletionError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s completion failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// ErrEmptyCompletion is reported when the model answers with blank text.
var ErrEmptyCompletion = errors.New("no response from LLM")

// completionErrorKind extracts the failure kind from err, defaulting to unknown.
func completionErrorKind(err error) ErrorKind {
	var completionErr *CompletionError
	if errors.As(err, &completionErr) {
		return completionErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindUnavailable
	}
	return ErrorKindUnknown
}

// classifyErrorMessage maps provider error text to a kind. Used when the SDK
// does not expose a structured status.
func classifyErrorMessage(msg string) ErrorKind {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "api key not valid"),
		strings.Contains(msg, "api_key_invalid"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "not found"):
		return ErrorKindAuthInvalid
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "resource exhausted"):
		return ErrorKindRateLimited
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "502"),
		strings.Contains(msg, "503"),
		strings.Contains(msg, "504"),
		strings.Contains(msg, "unavailable"):
		return ErrorKindUnavailable
	default:
		return ErrorKindUnknown
	}
}

// completeWithTimeout runs one completion call bounded by timeout and trims the answer.
func completeWithTimeout(ctx context.Context, client CompletionClient, timeout time.Duration, prompt string, logger *zap.Logger) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := client.Complete(ctx, prompt)
	if err != nil {
		var completionErr *CompletionError
		if !errors.As(err, &completionErr) {
			kind := classifyErrorMessage(err.Error())
			if errors.Is(err, context.DeadlineExceeded) {
				kind = ErrorKindUnavailable
			}
			err = &CompletionError{Kind: kind, Provider: client.Provider(), Err: err}
		}
		logger.Warn("Completion call failed",
			zap.String("provider", client.Provider()),
			zap.String("kind", completionErrorKind(err).String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}

	text = sanitizeUTF8(strings.TrimSpace(text))
	if text == "" {
		return "", &CompletionError{Kind: ErrorKindUnknown, Provider: client.Provider(), Err: ErrEmptyCompletion}
	}

	logger.Debug("Completion call succeeded",
		zap.String("provider", client.Provider()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("length", len(text)),
	)
	return text, nil
}

// ClosableCompletionClient is a CompletionClient holding network resources.
type ClosableCompletionClient interface {
	CompletionClient
	Close() error
}

// NewCompletionClient builds the client for the configured provider.
func NewCompletionClient(ctx context.Context, cfg *config.CompletionConfig, logger *zap.Logger) (ClosableCompletionClient, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, &cfg.Gemini, logger)
	case ProviderGigaChat:
		return NewGigaChatClient(ctx, &cfg.GigaChat, logger)
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.Provider)
	}
}
