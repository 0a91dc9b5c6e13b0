package utils

import "errors"

var (
	ErrMissingAPIKey      = errors.New("completion API key is not configured")
	ErrUnsupportedLLM     = errors.New("unsupported LLM provider")
	ErrEmptyCompletion    = errors.New("completion returned empty content")
	ErrNoChoices          = errors.New("completion returned no choices")
	ErrNoJSON             = errors.New("no JSON object found in completion text")
	ErrMalformedPlan      = errors.New("extracted value is not a plan object")
	ErrInvalidChatRequest = errors.New("plan and message are required")
	ErrInvalidRequestBody = errors.New("request body is not valid JSON")
)
