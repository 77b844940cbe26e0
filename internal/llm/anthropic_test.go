package llm

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicAt(t *testing.T, url string) *AnthropicProvider {
	t.Helper()
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku"}, option.WithBaseURL(url))
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, anthropicMessage(validFact, "end_turn"))

	resp, err := anthropicAt(t, srv.URL).Generate(context.Background(), factRequest())
	require.NoError(t, err)
	assert.JSONEq(t, validFact, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 12}, resp.Usage)
	assert.Equal(t, 52, resp.Usage.Total())
	assert.Equal(t, StopEnd, resp.StopReason)
}

func TestAnthropicProvider_TruncatedJSON(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, anthropicMessage(`{"title":"Octo`, "max_tokens"))

	_, err := anthropicAt(t, srv.URL).Generate(context.Background(), factRequest())
	assert.ErrorIs(t, err, ErrMaxTokensExceeded)
}

func TestAnthropicProvider_SchemaMismatch(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, anthropicMessage(`{"title":"x","category":"sport"}`, "end_turn"))

	_, err := anthropicAt(t, srv.URL).Generate(context.Background(), factRequest())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestAnthropicProvider_HTTPErrors(t *testing.T) {
	apiError := map[string]any{"type": "error", "error": map[string]any{"type": "x", "message": "nope"}}

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimit},
		{http.StatusBadRequest, ErrRequestRejected},
		{http.StatusInternalServerError, ErrProviderUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := serveJSON(t, tt.status, apiError, "Retry-After", "7")
			_, err := anthropicAt(t, srv.URL).Generate(context.Background(), factRequest())
			require.ErrorIs(t, err, tt.want)

			if tt.want == ErrRateLimit {
				var e *Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, 7*time.Second, e.RetryAfter)
			}
		})
	}
}

func TestAnthropicProvider_Aliases(t *testing.T) {
	tests := map[string]string{
		"claude-haiku":             "claude-haiku-4-5-20251001",
		"claude-sonnet":            "claude-sonnet-4-20250514",
		"claude-opus-4-1-20250805": "claude-opus-4-1-20250805",
	}
	for in, want := range tests {
		p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: in})
		require.NoError(t, err)
		if got := p.ModelID(); got != want {
			t.Errorf("ModelID(%q) = %q, want %q", in, got, want)
		}
	}

	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
