package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjostromVilgot/Facta-sub000/internal/config"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
)

func TestRootCommands(t *testing.T) {
	want := []string{"play", "stats", "history", "facts", "remind", "generate", "llm", "reset", "version"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}

func TestPlay_UnknownMode(t *testing.T) {
	rootCmd.SetArgs([]string{"play", "--mode", "marathon"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, quiz.ErrUnknownMode)
}

func TestResolveDBPath(t *testing.T) {
	require.NoError(t, rootCmd.ParseFlags(nil))
	dir := t.TempDir()
	cfg := &config.Config{Store: config.Store{Path: filepath.Join(dir, "cfg", "facta.db")}}

	got, err := resolveDBPath(rootCmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Store.Path, got)

	flag := filepath.Join(dir, "flag", "facta.db")
	require.NoError(t, rootCmd.Flags().Set("db", flag))
	t.Cleanup(func() { _ = rootCmd.Flags().Set("db", "") })

	got, err = resolveDBPath(rootCmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, flag, got)
	assert.DirExists(t, filepath.Dir(flag))
}

func TestLLMCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facta.db")
	db, err := store.Open(dbPath)
	require.NoError(t, err)
	repo := db.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "pack-gen",
		InputTokens: 1000, OutputTokens: 2000, Success: true,
		RequestBody: "── user ──\nspace", ResponseBody: `{"facts":[]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openai", Model: "mystery-1", Purpose: "pack-gen", ErrorMessage: "rate limited",
	}))
	require.NoError(t, db.Close())

	run := func(args ...string) string {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(append(args, "--db", dbPath))
		t.Cleanup(func() {
			rootCmd.SetOut(nil)
			rootCmd.SetArgs(nil)
			_ = rootCmd.PersistentFlags().Set("db", "")
		})
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	list := run("llm", "list")
	assert.Contains(t, list, "claude-haiku-4-5-20251001")
	assert.Contains(t, list, "failed")

	view := run("llm", "view", "1")
	assert.Contains(t, view, "=== request ===\n── user ──\nspace")
	assert.Contains(t, view, `{"facts":[]}`)

	stats := run("llm", "stats")
	assert.Contains(t, stats, "$0.01")
	assert.Contains(t, stats, "no price for mystery-1")
}
