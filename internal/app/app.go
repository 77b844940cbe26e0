// Package app is the root Bubble Tea model: it owns the screen stack, the
// frame drawn around it and the keys that work everywhere.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/router"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/screens/home"
	"github.com/sjostromVilgot/Facta-sub000/internal/screens/onboarding"
	quizscreen "github.com/sjostromVilgot/Facta-sub000/internal/screens/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
)

type Options struct {
	Deps *screen.Deps

	// Mode opens that quiz straight away, over the home screen.
	Mode quiz.Mode
}

type AppModel struct {
	router        *router.Router
	stats         layout.HeaderStats
	width, height int
}

// newAppModel starts on onboarding until the player has finished it once.
func newAppModel(opts Options) AppModel {
	d := opts.Deps
	newHome := func() screen.Screen { return home.New(d) }

	if !d.Progress.LoadUserSettings(context.Background()).OnboardingComplete {
		return AppModel{router: router.New(onboarding.New(d, newHome))}
	}
	r := router.New(newHome())
	if opts.Mode != "" {
		r.Push(quizscreen.NewWithMode(d, opts.Mode))
	}
	return AppModel{router: r}
}

func (m AppModel) Init() tea.Cmd { return m.router.Active().Init() }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case screen.StatsMsg:
		m.stats = layout.HeaderStats(msg)
		return m, nil
	case tea.KeyPressMsg:
		if cmd, handled := m.globalKey(msg.String()); handled {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles ctrl+c and Esc. Esc is left to screens that are taking
// text input, and does nothing on the root screen.
func (m AppModel) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
			return nil, false
		}
		if m.router.Depth() == 1 {
			return nil, true
		}
		return router.Pop(), true
	}
	return nil, false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	switch {
	case m.width == 0 || m.height == 0:
	case !layout.Fits(m.width, m.height):
		v.SetContent(layout.TooSmall(m.width, m.height))
	default:
		v.SetContent(layout.Compose(m.width, m.height,
			layout.Header(m.router.Active().Title(), m.stats, m.width),
			layout.Footer(m.footerHints(), m.width),
			m.router.View))
	}
	return v
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	switch p, ok := m.router.Active().(screen.KeyHintProvider); {
	case ok:
		hints = p.KeyHints()
	case m.router.Depth() > 1:
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run applies the saved reminder settings, then runs the TUI until the
// player quits. Reminders only fire while it runs.
func Run(opts Options) error {
	d := opts.Deps
	if s := d.Scheduler; s != nil {
		if err := s.Apply(d.Progress.LoadUserSettings(context.Background())); err != nil {
			d.Log().Warn("schedule reminders failed", "error", err)
		}
		s.Start()
		defer s.Stop()
	}
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
