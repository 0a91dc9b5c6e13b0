package infra

import (
	"errors"
	"reflect"
	"testing"

	"gezi/pkg/utils"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := configFromEnv(envOf(map[string]string{"OPENAI_API_KEY": "sk-test"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "3000" || cfg.AppEnv != "production" || cfg.IsDevelopment() {
		t.Fatalf("unexpected server settings %+v", cfg)
	}
	if cfg.Completion.Provider != "openai" || cfg.Completion.Model != "gpt-5-nano" || cfg.Completion.Timeout != 60 {
		t.Fatalf("unexpected completion settings %+v", cfg.Completion)
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Fatalf("rate limit = %d", cfg.RateLimitPerMinute)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestConfigFromEnvGemini(t *testing.T) {
	cfg, err := configFromEnv(envOf(map[string]string{
		"LLM_PROVIDER":          "Gemini",
		"GEMINI_API_KEY":        "g-key",
		"PORT":                  ":8080",
		"APP_ENV":               "development",
		"LLM_TIMEOUT_SECONDS":   "abc",
		"CORS_ALLOWED_ORIGINS":  "https://a.example, ,https://b.example",
		"RATE_LIMIT_PER_MINUTE": "5",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Completion.Provider != "gemini" || cfg.Completion.Model != "gemini-1.5-flash" || cfg.Completion.APIKey != "g-key" {
		t.Fatalf("unexpected completion settings %+v", cfg.Completion)
	}
	if cfg.Completion.Timeout != 60 {
		t.Fatalf("invalid timeout should fall back, got %d", cfg.Completion.Timeout)
	}
	if cfg.Port != "8080" || !cfg.IsDevelopment() || cfg.RateLimitPerMinute != 5 {
		t.Fatalf("unexpected server settings %+v", cfg)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestConfigFromEnvErrors(t *testing.T) {
	if _, err := configFromEnv(envOf(map[string]string{})); !errors.Is(err, utils.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := configFromEnv(envOf(map[string]string{"LLM_PROVIDER": "gemini", "OPENAI_API_KEY": "sk"})); !errors.Is(err, utils.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey for gemini without its key, got %v", err)
	}
	if _, err := configFromEnv(envOf(map[string]string{"LLM_PROVIDER": "llama", "OPENAI_API_KEY": "sk"})); !errors.Is(err, utils.ErrUnsupportedLLM) {
		t.Fatalf("expected ErrUnsupportedLLM, got %v", err)
	}
}
