package packgen

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/llm"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
)

func testInput() GenerateInput {
	return GenerateInput{
		Topic:     "Deep sea creatures",
		Facts:     1,
		Questions: 2,
		Kinds:     []quiz.Kind{quiz.KindMultipleChoice, quiz.KindTrueFalse},
		Existing:  []string{"Octopuses have three hearts"},
	}
}

func validPackJSON() json.RawMessage {
	return json.RawMessage(`{
		"facts": [{
			"title": "Anglerfish make their own light",
			"body": "Female anglerfish carry bioluminescent bacteria in a lure on their heads.",
			"category": "Animals",
			"emoji": "🐟",
			"source": "Monterey Bay Aquarium"
		}],
		"questions": [
			{
				"kind": "multiple_choice",
				"prompt": "What lights an anglerfish's lure?",
				"category": "Animals",
				"explanation": "Symbiotic bacteria glow inside the lure.",
				"image": "",
				"options": ["Bacteria", "Electricity", "Moonlight", "Crystals"],
				"correct_index": 0,
				"correct_bool": false,
				"correct_text": ""
			},
			{
				"kind": "true_false",
				"prompt": "The vampire squid drinks blood.",
				"category": "Animals",
				"explanation": "It eats marine snow.",
				"image": "",
				"options": [],
				"correct_index": -1,
				"correct_bool": false,
				"correct_text": ""
			}
		]
	}`)
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Content: validPackJSON()})
	gen := New(mock, DefaultConfig())

	pack, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.Version != PackVersion {
		t.Errorf("Version = %q, want %q", pack.Version, PackVersion)
	}
	if !strings.HasPrefix(pack.Name, "deep-sea-creatures-") {
		t.Errorf("Name = %q, want deep-sea-creatures-<batch>", pack.Name)
	}
	if len(pack.Facts) != 1 || len(pack.Questions) != 2 {
		t.Fatalf("got %d facts, %d questions", len(pack.Facts), len(pack.Questions))
	}
	if !strings.HasPrefix(pack.Facts[0].ID, "gen-") {
		t.Errorf("fact ID = %q, want gen- prefix", pack.Facts[0].ID)
	}

	ok, err := pack.Questions[0].Evaluate(quiz.Choice(0))
	if err != nil || !ok {
		t.Errorf("Evaluate(Choice(0)) = %v, %v; want true, nil", ok, err)
	}
	ok, err = pack.Questions[1].Evaluate(quiz.Bool(false))
	if err != nil || !ok {
		t.Errorf("Evaluate(Bool(false)) = %v, %v; want true, nil", ok, err)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Content: validPackJSON()})
	cfg := DefaultConfig()
	cfg.MaxTokens = 1234
	gen := New(mock, cfg)

	if _, err := gen.Generate(context.Background(), testInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqs := mock.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	req := reqs[0]
	if req.Schema != PackSchema {
		t.Error("request did not carry PackSchema")
	}
	if req.MaxTokens != 1234 {
		t.Errorf("MaxTokens = %d, want 1234", req.MaxTokens)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Topic: Deep sea creatures", "multiple_choice, true_false", "1. Octopuses have three hearts"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerate_DuplicateRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Content: validPackJSON()})
	input := testInput()
	input.Existing = append(input.Existing, "the VAMPIRE squid drinks blood.")

	_, err := New(mock, DefaultConfig()).Generate(context.Background(), input)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Validator != "duplicate" {
		t.Errorf("Validator = %q, want duplicate", verr.Validator)
	}
}

func TestGenerate_TooFewItems(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Content: validPackJSON()})
	input := testInput()
	input.Questions = 5

	_, err := New(mock, DefaultConfig()).Generate(context.Background(), input)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "structural" {
		t.Fatalf("error = %v, want structural validation error", err)
	}
}

func TestGenerate_BadAnswerRejected(t *testing.T) {
	bad := json.RawMessage(`{"facts": [], "questions": [{
		"kind": "multiple_choice", "prompt": "Pick one", "category": "", "explanation": "",
		"image": "", "options": ["a", "b"], "correct_index": 7, "correct_bool": false, "correct_text": ""
	}]}`)
	mock := llm.NewMockProvider(llm.MockReply{Content: bad})
	gen := New(mock, Config{})

	if _, err := gen.Generate(context.Background(), GenerateInput{Topic: "x"}); err == nil {
		t.Fatal("expected error for out-of-range correct_index")
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Err: &llm.Error{Kind: llm.ErrRateLimit}})
	_, err := New(mock, DefaultConfig()).Generate(context.Background(), testInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, llm.ErrRateLimit) {
		t.Errorf("error = %v, want llm.ErrRateLimit", err)
	}
}

func TestWritePackLoadsIntoProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Content: validPackJSON()})
	pack, err := New(mock, DefaultConfig()).Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	dir := t.TempDir()
	path, err := WritePack(dir, pack)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}

	p, err := content.NewProvider(content.Options{PackDir: dir})
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	if _, ok := p.FactByID(pack.Facts[0].ID); !ok {
		t.Errorf("generated fact %q not served by provider", pack.Facts[0].ID)
	}
}

func TestBuildDedup(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		max      int
		want     string
	}{
		{"empty", nil, 5, "None"},
		{"all", []string{"a", "b"}, 5, "1. a\n2. b"},
		{"capped keeps newest", []string{"a", "b", "c"}, 2, "1. b\n2. c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildDedup(tt.existing, tt.max); got != tt.want {
				t.Errorf("buildDedup() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Deep sea creatures": "deep-sea-creatures",
		"  Space!! & Time ":  "space-time",
		"???":                "pack",
	}
	for in, want := range tests {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
