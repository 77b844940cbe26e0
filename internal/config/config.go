// Package config loads Facta settings from an optional YAML file, a .env
// file and FACTA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sjostromVilgot/Facta-sub000/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. FACTA_STORE_BACKEND.
const EnvPrefix = "FACTA"

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var ErrInvalidBackend = errors.New("config: unknown store backend")

// Config holds application configuration.
type Config struct {
	Env     string  `mapstructure:"env"` // "development" or "production"
	Log     Log     `mapstructure:"log"`
	Store   Store   `mapstructure:"store"`
	Redis   Redis   `mapstructure:"redis"`
	Content Content `mapstructure:"content"`
	LLM     LLM     `mapstructure:"llm"`
	Notify  Notify  `mapstructure:"notify"`
}

type Log struct {
	File string `mapstructure:"file"` // empty logs to stderr for CLI commands
}

type Store struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"` // sqlite file; empty resolves the XDG default
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type Content struct {
	PackDir string `mapstructure:"pack_dir"`
}

type Notify struct {
	Location string `mapstructure:"location"` // IANA name; empty uses the local zone
}

// LLM mirrors llm.Config in file/env form.
type LLM struct {
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Anthropic  LLMProvider   `mapstructure:"anthropic"`
	OpenAI     LLMProvider   `mapstructure:"openai"`
	Gemini     LLMProvider   `mapstructure:"gemini"`
	OpenRouter LLMProvider   `mapstructure:"openrouter"`
	Retry      LLMRetry      `mapstructure:"retry"`
}

type LLMProvider struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type LLMRetry struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// Load reads configuration. configFile, when set, replaces the search for
// config.yaml. A .env file in the working directory is applied first and
// never overrides variables already set.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath("$XDG_CONFIG_HOME/facta")
		v.AddConfigPath("$HOME/.config/facta")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names for secrets and the database path.
	_ = v.BindEnv("store.path", "FACTA_DB", "FACTA_STORE_PATH")
	_ = v.BindEnv("llm.anthropic.api_key", "FACTA_ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openai.api_key", "FACTA_OPENAI_API_KEY")
	_ = v.BindEnv("llm.gemini.api_key", "FACTA_GEMINI_API_KEY")
	_ = v.BindEnv("llm.openrouter.api_key", "FACTA_OPENROUTER_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("env", "development")
	v.SetDefault("log.file", "")
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.path", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "facta")
	v.SetDefault("content.pack_dir", "")
	v.SetDefault("notify.location", "")

	v.SetDefault("llm.provider", def.Provider)
	v.SetDefault("llm.timeout", def.Timeout)
	for name, model := range map[string]string{
		"anthropic":  def.Anthropic.Model,
		"openai":     def.OpenAI.Model,
		"gemini":     def.Gemini.Model,
		"openrouter": def.OpenRouter.Model,
	} {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", model)
		v.SetDefault("llm."+name+".base_url", "")
	}
	v.SetDefault("llm.retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", def.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", def.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", def.Retry.Multiplier)
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Store.Backend)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the reminder time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Notify.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Notify.Location)
	if err != nil {
		return nil, fmt.Errorf("notify.location: %w", err)
	}
	return loc, nil
}

// LogMode is the logger mode for Env.
func (c *Config) LogMode() string {
	if c.Env == "production" {
		return "production"
	}
	return "development"
}

// LLMConfig converts the LLM section. When the selected provider has no
// API key, the standard vendor variables (GEMINI_API_KEY and friends) are
// probed instead.
func (c *Config) LLMConfig() llm.Config {
	out := llm.Config{
		Provider: c.LLM.Provider,
		Timeout:  c.LLM.Timeout,
		Anthropic: llm.AnthropicConfig{
			APIKey: c.LLM.Anthropic.APIKey,
			Model:  c.LLM.Anthropic.Model,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.LLM.OpenAI.APIKey,
			Model:   c.LLM.OpenAI.Model,
			BaseURL: c.LLM.OpenAI.BaseURL,
		},
		Gemini: llm.GeminiConfig{
			APIKey: c.LLM.Gemini.APIKey,
			Model:  c.LLM.Gemini.Model,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.LLM.OpenRouter.APIKey,
			Model:   c.LLM.OpenRouter.Model,
			BaseURL: c.LLM.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: c.LLM.Retry.MaxAttempts,
			InitialWait: c.LLM.Retry.InitialWait,
			MaxWait:     c.LLM.Retry.MaxWait,
			Multiplier:  c.LLM.Retry.Multiplier,
		},
	}

	if out.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Timeout = out.Timeout
			discovered.Retry = out.Retry
			return discovered
		}
	}
	return out
}
