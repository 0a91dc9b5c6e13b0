package infra

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gezi/pkg/utils"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	Port               string
	AppEnv             string
	Completion         utils.CompletionConfig
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	StartedAt          time.Time
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// LoadConfig reads .env (when present) and the process environment. A missing
// API key for the selected provider is reported as utils.ErrMissingAPIKey.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	envInt := func(key string, def int) int {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Printf("Ignoring invalid %s=%q, using %d", key, v, def)
		}
		return def
	}

	provider := strings.ToLower(env("LLM_PROVIDER", "openai"))

	completion := utils.CompletionConfig{
		Provider:  provider,
		MaxTokens: envInt("LLM_MAX_TOKENS", 0),
		Timeout:   envInt("LLM_TIMEOUT_SECONDS", 60),
	}
	switch provider {
	case "openai":
		completion.APIKey = getenv("OPENAI_API_KEY")
		completion.Model = env("LLM_MODEL", "gpt-5-nano")
		completion.BaseURL = getenv("OPENAI_BASE_URL")
	case "gemini":
		completion.APIKey = getenv("GEMINI_API_KEY")
		completion.Model = env("LLM_MODEL", "gemini-1.5-flash")
	default:
		return nil, fmt.Errorf("%w: %s. Use 'openai' or 'gemini'", utils.ErrUnsupportedLLM, provider)
	}
	if strings.TrimSpace(completion.APIKey) == "" {
		return nil, fmt.Errorf("%w: set %s_API_KEY", utils.ErrMissingAPIKey, strings.ToUpper(provider))
	}

	var origins []string
	for _, o := range strings.Split(env("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:               strings.TrimPrefix(env("PORT", "3000"), ":"),
		AppEnv:             env("APP_ENV", "production"),
		Completion:         completion,
		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins: origins,
		StartedAt:          time.Now(),
	}, nil
}
