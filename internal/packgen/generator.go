// Package packgen asks an LLM for new facts and questions and turns the
// answer into a validated content pack.
package packgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/llm"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
)

// PackVersion is stamped on every generated pack.
const PackVersion = "1.0.0"

// GenerateInput describes the pack to request.
type GenerateInput struct {
	Topic     string
	Category  string
	Facts     int
	Questions int
	Kinds     []quiz.Kind

	// Existing fact titles and question prompts, for deduplication.
	Existing []string
}

// Generator produces content packs with an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

type factOutput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Emoji    string `json:"emoji"`
	Source   string `json:"source"`
}

type questionOutput struct {
	Kind         string   `json:"kind"`
	Prompt       string   `json:"prompt"`
	Category     string   `json:"category"`
	Explanation  string   `json:"explanation"`
	Image        string   `json:"image"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	CorrectBool  bool     `json:"correct_bool"`
	CorrectText  string   `json:"correct_text"`
}

type packOutput struct {
	Facts     []factOutput     `json:"facts"`
	Questions []questionOutput `json:"questions"`
}

// Generate requests a pack and returns it after schema, version and
// validator checks.
func (g *Generator) Generate(ctx context.Context, input GenerateInput) (*content.Pack, error) {
	ctx = llm.WithPurpose(ctx, "pack-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      PackSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw packOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	pack, err := toPack(raw, input)
	if err != nil {
		return nil, err
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(pack, input); verr != nil {
			return nil, verr
		}
	}
	return pack, nil
}

// toPack assigns IDs, maps the flat question shape onto quiz answers and
// round-trips the result through content.ParsePack.
func toPack(raw packOutput, input GenerateInput) (*content.Pack, error) {
	batch := uuid.NewString()[:8]
	pack := content.Pack{
		Version: PackVersion,
		Name:    slug(input.Topic) + "-" + batch,
	}

	for i, f := range raw.Facts {
		category := f.Category
		if input.Category != "" {
			category = input.Category
		}
		pack.Facts = append(pack.Facts, content.Fact{
			ID:       fmt.Sprintf("gen-%s-f%d", batch, i+1),
			Title:    f.Title,
			Body:     f.Body,
			Category: category,
			Emoji:    f.Emoji,
			Source:   f.Source,
		})
	}

	for i, q := range raw.Questions {
		question := quiz.Question{
			ID:          fmt.Sprintf("gen-%s-q%d", batch, i+1),
			Kind:        quiz.Kind(q.Kind),
			Prompt:      q.Prompt,
			Category:    q.Category,
			Explanation: q.Explanation,
			Image:       q.Image,
		}
		switch question.Kind {
		case quiz.KindMultipleChoice, quiz.KindImageChoice:
			question.Answer = quiz.ChoiceAnswer{Options: q.Options, Correct: q.CorrectIndex}
		case quiz.KindTrueFalse:
			question.Answer = quiz.BoolAnswer{Correct: q.CorrectBool}
		case quiz.KindFillBlank:
			question.Answer = quiz.TextAnswer{Correct: q.CorrectText}
		}
		pack.Questions = append(pack.Questions, question)
	}

	encoded, err := json.Marshal(pack)
	if err != nil {
		return nil, fmt.Errorf("encode pack: %w", err)
	}
	parsed, err := content.ParsePack(encoded)
	if err != nil {
		return nil, fmt.Errorf("generated pack rejected: %w", err)
	}
	return parsed, nil
}

// WritePack saves p into dir as <name>.json and returns the path.
func WritePack(dir string, p *content.Pack) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create pack dir: %w", err)
	}
	name := p.Name
	if name == "" {
		name = "pack-" + time.Now().Format("20060102-150405")
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode pack: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write pack: %w", err)
	}
	return path, nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "pack"
	}
	return out
}
