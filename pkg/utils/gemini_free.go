package utils

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiCompletionClient implements CompletionClientInterface using Google's Gemini models
type GeminiCompletionClient struct {
	client    *genai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewGeminiCompletionClient creates a new Gemini client
func NewGeminiCompletionClient(ctx context.Context, cfg CompletionConfig) (*GeminiCompletionClient, error) {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	timeout := defaultCompletionTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return &GeminiCompletionClient{
		client:    client,
		model:     model,
		maxTokens: cfg.MaxTokens,
		timeout:   timeout,
	}, nil
}

func (c *GeminiCompletionClient) Model() string { return c.model }

func (c *GeminiCompletionClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	m := c.client.GenerativeModel(c.model)
	if req.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if req.JSONMode {
		m.ResponseMIMEType = "application/json"
	}
	if c.maxTokens > 0 {
		m.SetMaxOutputTokens(int32(c.maxTokens))
	}

	log.Printf("Sending Gemini request (model: %s, json: %t)", c.model, req.JSONMode)

	resp, err := m.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		log.Printf("Gemini API error (status %d): %v", StatusCodeOf(err), err)
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoChoices
	}

	candidate := resp.Candidates[0]
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	result := &CompletionResult{
		Model:        c.model,
		Content:      text.String(),
		FinishReason: candidate.FinishReason.String(),
		Raw:          resp,
	}
	if u := resp.UsageMetadata; u != nil {
		result.Usage = CompletionUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	log.Printf("Gemini response finish_reason=%s content_length=%d tokens=%d",
		result.FinishReason, len(result.Content), result.Usage.TotalTokens)

	return result, nil
}

// Close closes the Gemini client
func (c *GeminiCompletionClient) Close() error {
	return c.client.Close()
}
