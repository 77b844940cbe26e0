package llm

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "FACTA_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk"}}, ""},
		{"openai without key", Config{Provider: ProviderOpenAI}, "FACTA_OPENAI_API_KEY"},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "g"}}, ""},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, "FACTA_OPENROUTER_API_KEY"},
		{"mock needs no key", Config{Provider: ProviderMock}, ""},
		{"unknown provider", Config{Provider: "llama"}, "unknown LLM provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, env := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("DiscoverConfig() found a provider with no keys set")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig() = false, want true")
	}
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderAnthropic)
	}
	if cfg.APIKey() != "sk-ant" {
		t.Errorf("APIKey() = %q, want sk-ant", cfg.APIKey())
	}
	if cfg.Anthropic.Model != DefaultConfig().Anthropic.Model {
		t.Errorf("Model = %q, want default", cfg.Anthropic.Model)
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, _ = DiscoverConfig()
	if cfg.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want gemini to take priority", cfg.Provider)
	}
}
