package utils

import (
	"context"
	"fmt"
	"strings"
)

// CompletionClientInterface is the single seam to the external model. Tests
// replace it with a stub.
type CompletionClientInterface interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
	Model() string
}

type CompletionRequest struct {
	System string
	User   string
	// JSONMode asks the provider for its JSON-object response format.
	JSONMode bool
}

type CompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type CompletionResult struct {
	ID           string
	Model        string
	Content      string
	FinishReason string
	Usage        CompletionUsage
	// Raw is the vendor response, exposed only by the diagnostic endpoint.
	Raw any
}

// CompletionConfig holds the read-only settings shared by every provider.
type CompletionConfig struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   int // seconds
}

// NewCompletionClient picks a provider implementation from config.
func NewCompletionClient(cfg CompletionConfig) (CompletionClientInterface, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAICompletionClient(cfg), nil
	case "gemini":
		client, err := NewGeminiCompletionClient(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLLM, cfg.Provider)
	}
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
