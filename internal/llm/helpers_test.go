package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

var factSchema = &Schema{
	Name: "test-fact",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"title", "category"},
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"category": map[string]any{"type": "string", "enum": []string{"science", "history"}},
			"tags":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"additionalProperties": false,
	},
}

const validFact = `{"title":"Octopuses have three hearts","category":"science"}`

func factRequest() Request {
	return Request{
		System:    "You write trivia.",
		Messages:  []Message{{Role: RoleUser, Content: "one fact about octopuses"}},
		Schema:    factSchema,
		MaxTokens: 512,
	}
}

// serveJSON starts a server that answers every request with status and body.
func serveJSON(t *testing.T, status int, body any, header ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		for i := 0; i+1 < len(header); i += 2 {
			w.Header().Set(header[i], header[i+1])
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}
