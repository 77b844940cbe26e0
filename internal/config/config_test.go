package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears FACTA_* and vendor key variables and runs from an empty dir.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FACTA_ENV", "FACTA_DB", "FACTA_STORE_BACKEND", "FACTA_STORE_PATH",
		"FACTA_REDIS_ADDR", "FACTA_LLM_PROVIDER", "FACTA_LLM_TIMEOUT",
		"FACTA_ANTHROPIC_API_KEY", "FACTA_OPENAI_API_KEY", "FACTA_GEMINI_API_KEY",
		"FACTA_OPENROUTER_API_KEY", "FACTA_NOTIFY_LOCATION", "FACTA_CONTENT_PACK_DIR",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"XDG_CONFIG_HOME",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "facta", cfg.Redis.Prefix)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, "development", cfg.LogMode())
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FACTA_ENV", "production")
	t.Setenv("FACTA_STORE_BACKEND", "redis")
	t.Setenv("FACTA_REDIS_ADDR", "cache:6380")
	t.Setenv("FACTA_DB", "/tmp/x.db")
	t.Setenv("FACTA_LLM_PROVIDER", "openai")
	t.Setenv("FACTA_OPENAI_API_KEY", "sk-test")
	t.Setenv("FACTA_LLM_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.LogMode())
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.Store.Path)

	lc := cfg.LLMConfig()
	assert.Equal(t, "openai", lc.Provider)
	assert.Equal(t, "sk-test", lc.OpenAI.APIKey)
	assert.Equal(t, 5*time.Second, lc.Timeout)
	assert.NoError(t, lc.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "facta.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: memory
content:
  pack_dir: /srv/packs
notify:
  location: Europe/Stockholm
llm:
  provider: gemini
  gemini:
    model: gemini-2.5-flash
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "/srv/packs", cfg.Content.PackDir)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Gemini.Model)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Stockholm", loc.String())
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("FACTA_CONTENT_PACK_DIR=/from/dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("FACTA_CONTENT_PACK_DIR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.Content.PackDir)
}

func TestLoadInvalidBackend(t *testing.T) {
	isolate(t)
	t.Setenv("FACTA_STORE_BACKEND", "postgres")

	_, err := Load("")
	assert.True(t, errors.Is(err, ErrInvalidBackend), "error = %v", err)
}

func TestLoadInvalidLocation(t *testing.T) {
	isolate(t)
	t.Setenv("FACTA_NOTIFY_LOCATION", "Mars/Olympus")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLLMConfigDiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load("")
	require.NoError(t, err)

	lc := cfg.LLMConfig()
	assert.Equal(t, "gemini", lc.Provider)
	assert.Equal(t, "g-key", lc.Gemini.APIKey)
}
