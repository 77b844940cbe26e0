// Package llm talks to hosted language models for content pack generation.
// Every vendor is reached through Provider, which returns JSON checked
// against the requested schema.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

type Provider interface {
	// Generate runs one completion. With req.Schema set the response
	// content is JSON that validates against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, before any vendor aliasing.
	ModelID() string
}

type Request struct {
	System   string
	Messages []Message
	Schema   *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the vendor default
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema for structured output. Name must be unique per
// definition: compiled schemas are cached by it.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // as reported by the vendor
	StopReason StopReason
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// StopReason is the vendor finish reason, normalised.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// completion is what a vendor adapter extracted from its reply.
type completion struct {
	text  string
	usage Usage
	model string
	stop  StopReason
}

// finish turns a vendor reply into a Response. A reply cut off by the
// token limit is an error when JSON was requested, since it cannot parse.
func finish(req Request, c completion) (*Response, error) {
	content := json.RawMessage(c.text)
	if req.Schema != nil {
		if c.stop == StopMaxTokens {
			return nil, &Error{Kind: ErrMaxTokensExceeded, Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	} else {
		quoted, err := json.Marshal(c.text)
		if err != nil {
			return nil, fmt.Errorf("encode text response: %w", err)
		}
		content = quoted
	}
	return &Response{Content: content, Usage: c.usage, Model: c.model, StopReason: c.stop}, nil
}

// resolveModel maps a short alias to a vendor model ID. Unknown names are
// passed through so full IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
