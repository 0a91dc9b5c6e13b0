package utils

import (
	"context"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultCompletionTimeout = 60 * time.Second

// OpenAICompletionClient implements CompletionClientInterface on the chat completions API.
type OpenAICompletionClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

func NewOpenAICompletionClient(cfg CompletionConfig) *OpenAICompletionClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-5-nano"
	}

	timeout := defaultCompletionTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return &OpenAICompletionClient{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		maxTokens: cfg.MaxTokens,
		timeout:   timeout,
	}
}

func (c *OpenAICompletionClient) Model() string { return c.model }

func (c *OpenAICompletionClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	// Reasoning models reject temperature, so only the token cap is forwarded.
	chatReq := openai.ChatCompletionRequest{
		Model:               c.model,
		Messages:            messages,
		MaxCompletionTokens: c.maxTokens,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	log.Printf("Sending OpenAI request (model: %s, json: %t)", c.model, req.JSONMode)

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		log.Printf("OpenAI API error (status %d): %v", StatusCodeOf(err), err)
		return nil, err
	}

	log.Printf("OpenAI response id=%s model=%s choices=%d tokens=%d",
		resp.ID, resp.Model, len(resp.Choices), resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	choice := resp.Choices[0]
	log.Printf("finish_reason=%s content_length=%d", choice.FinishReason, len(choice.Message.Content))

	return &CompletionResult{
		ID:           resp.ID,
		Model:        resp.Model,
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: CompletionUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Raw: resp,
	}, nil
}
