package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the model backend used for pack generation.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries. Zero disables it.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible endpoints
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults: a small, cheap model per vendor.
// Trivia packs are short and do not need a frontier model.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// vendorEnv is checked in order by DiscoverConfig.
var vendorEnv = [...][2]string{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// DiscoverConfig picks the first vendor whose own API key variable is set,
// for users who have not configured Facta explicitly.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendorEnv {
		if key := os.Getenv(v[1]); key != "" {
			cfg := DefaultConfig()
			cfg.Provider = v[0]
			*cfg.keyFor(v[0]) = key
			return cfg, true
		}
	}
	return Config{}, false
}

// keyFor points at the API key field of provider, or nil.
func (c *Config) keyFor(provider string) *string {
	switch provider {
	case ProviderAnthropic:
		return &c.Anthropic.APIKey
	case ProviderOpenAI:
		return &c.OpenAI.APIKey
	case ProviderGemini:
		return &c.Gemini.APIKey
	case ProviderOpenRouter:
		return &c.OpenRouter.APIKey
	}
	return nil
}

// APIKey is the key of the selected provider.
func (c Config) APIKey() string {
	if k := c.keyFor(c.Provider); k != nil {
		return *k
	}
	return ""
}

// Validate requires a known provider and, except for mock, its key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	if c.keyFor(c.Provider) == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.APIKey() == "" {
		return fmt.Errorf("FACTA_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
