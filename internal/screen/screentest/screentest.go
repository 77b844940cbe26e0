// Package screentest builds screen dependencies over in-memory storage for
// screen tests.
package screentest

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
	"github.com/sjostromVilgot/Facta-sub000/internal/progression"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
)

// Now is the fixed clock every test dependency uses.
var Now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return Now }

// Source serves fixed questions for every mode.
type Source struct {
	Questions []quiz.Question
}

func (s Source) QuizQuestions(context.Context, quiz.Mode) ([]quiz.Question, error) {
	return s.Questions, nil
}

// Deps returns dependencies backed by a memory KV and the built-in content.
// When src is non-nil the quiz controller draws from it instead.
func Deps(t *testing.T, src quiz.QuestionSource) *screen.Deps {
	t.Helper()

	provider, err := content.NewProvider(content.Options{Now: clock})
	if err != nil {
		t.Fatalf("content.NewProvider: %v", err)
	}
	progress := store.NewProgress(store.NewMemoryKV(), nil)
	if src == nil {
		src = provider
	}

	return &screen.Deps{
		Progress:   progress,
		Content:    provider,
		Quiz:       quiz.NewController(src, progress, nil, clock),
		Aggregator: progression.NewAggregator(progress, nil, clock),
		Logger:     logger.Nop(),
		Now:        clock,
	}
}

// Key returns a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type sends each rune of text to s.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(Key(r))
	}
	return s
}

// Run executes cmd and feeds the resulting message back into s, following
// batches. Commands built with tea.Tick sleep, so keep them out of cmd.
func Run(s screen.Screen, cmd tea.Cmd) screen.Screen {
	if cmd == nil {
		return s
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			s = Run(s, c)
		}
		return s
	}
	s, _ = s.Update(msg)
	return s
}
