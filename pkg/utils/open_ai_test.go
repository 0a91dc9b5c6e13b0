package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOpenAITestServer(t *testing.T, handler http.HandlerFunc) *OpenAICompletionClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenAICompletionClient(CompletionConfig{
		Provider: "openai",
		APIKey:   "test-key",
		Model:    "test-model",
		BaseURL:  srv.URL + "/v1",
		Timeout:  5,
	})
}

func TestOpenAICompletionClientJSONMode(t *testing.T) {
	client := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		type message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}
		type format struct {
			Type string `json:"type"`
		}
		var body struct {
			Model          string    `json:"model"`
			Messages       []message `json:"messages"`
			ResponseFormat *format   `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Model != "test-model" {
			t.Errorf("model = %q", body.Model)
		}
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.Messages[1].Content != "plan please" {
			t.Errorf("unexpected messages %+v", body.Messages)
		}
		if body.ResponseFormat == nil || body.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %+v", body.ResponseFormat)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "test-model",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"summary\":\"ok\"}"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	})

	result, err := client.Complete(context.Background(), CompletionRequest{
		System:   "schema",
		User:     "plan please",
		JSONMode: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Content != `{"summary":"ok"}` {
		t.Fatalf("content = %q", result.Content)
	}
	if result.Usage.TotalTokens != 15 || result.FinishReason != "stop" || result.ID != "chatcmpl-1" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestOpenAICompletionClientRateLimitStatus(t *testing.T) {
	client := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{User: "hi"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsTransient(err) {
		t.Fatalf("429 should be transient, status=%d err=%v", StatusCodeOf(err), err)
	}
}

func TestOpenAICompletionClientNoChoices(t *testing.T) {
	client := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","model":"test-model","choices":[]}`))
	})

	if _, err := client.Complete(context.Background(), CompletionRequest{User: "hi"}); err != ErrNoChoices {
		t.Fatalf("expected ErrNoChoices, got %v", err)
	}
}
