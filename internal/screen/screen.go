package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
	"github.com/sjostromVilgot/Facta-sub000/internal/notify"
	"github.com/sjostromVilgot/Facta-sub000/internal/progression"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
)

// Screen is one page of the TUI. The app draws the header and footer;
// View only fills the space between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default "Esc Back" footer hint.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer screens get Esc while CapturingInput is true.
type InputCapturer interface {
	CapturingInput() bool
}

// Deps is what screens need from the rest of the program. Scheduler may be
// nil when reminders are disabled.
type Deps struct {
	Progress   *store.Progress
	Content    *content.Provider
	Quiz       *quiz.Controller
	Aggregator *progression.Aggregator
	Scheduler  *notify.Scheduler
	Logger     *logger.Logger
	Now        func() time.Time
}

// Clock returns d.Now or time.Now.
func (d *Deps) Clock() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// StatsMsg updates the header's level and streak.
type StatsMsg layout.HeaderStats

// Log returns the logger, or a no-op one.
func (d *Deps) Log() *logger.Logger {
	return logger.OrNop(d.Logger)
}
