// Package onboarding runs first-launch setup: a welcome splash, the
// player's name, interests and reminder opt-in.
package onboarding

import (
	"context"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/router"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

const tickInterval = 150 * time.Millisecond

var sparkleFrames = []string{"★", "✦", "✧"}

type step int

const (
	stepWelcome step = iota
	stepName
	stepInterests
	stepReminders
	stepSaving
)

type tickMsg time.Time

type savedMsg struct {
	err error
}

// OnboardingScreen collects first-launch settings and then replaces itself
// with the screen built by next.
type OnboardingScreen struct {
	deps *screen.Deps
	next func() screen.Screen

	step      step
	tickCount int

	name       components.TextInput
	categories []string
	interests  []string
	cursor     int

	dailyReminder bool
	quizReminder  bool

	transitioned bool
	errMsg       string
}

var (
	_ screen.Screen          = (*OnboardingScreen)(nil)
	_ screen.KeyHintProvider = (*OnboardingScreen)(nil)
	_ screen.InputCapturer   = (*OnboardingScreen)(nil)
)

// New creates the onboarding flow. next builds the screen shown afterwards.
func New(deps *screen.Deps, next func() screen.Screen) *OnboardingScreen {
	return &OnboardingScreen{
		deps:          deps,
		next:          next,
		name:          components.NewTextInput("Your name", 24),
		categories:    deps.Content.Categories(),
		dailyReminder: true,
	}
}

func (o *OnboardingScreen) Title() string {
	return ""
}

// CapturingInput is always true: Esc steps back through the flow.
func (o *OnboardingScreen) CapturingInput() bool {
	return true
}

func (o *OnboardingScreen) KeyHints() []layout.KeyHint {
	switch o.step {
	case stepWelcome:
		return []layout.KeyHint{{Key: "Enter", Description: "Get started"}}
	case stepName:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}, {Key: "Esc", Description: "Back"}}
	case stepInterests, stepReminders:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return nil
}

func (o *OnboardingScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (o *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		o.tickCount++
		if o.step == stepWelcome {
			return o, tick()
		}
		return o, nil

	case savedMsg:
		if msg.err != nil {
			o.deps.Log().Error("save onboarding failed", "error", msg.err)
			o.errMsg = "Could not save your settings. Press Enter to retry."
			o.step = stepReminders
			return o, nil
		}
		return o, o.transition()

	case tea.KeyPressMsg:
		return o, o.handleKey(msg)
	}

	if o.step == stepName {
		var cmd tea.Cmd
		o.name, cmd = o.name.Update(msg)
		return o, cmd
	}
	return o, nil
}

func (o *OnboardingScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		if o.step > stepWelcome && o.step < stepSaving {
			o.step--
			o.cursor = 0
			o.errMsg = ""
		}
		return nil
	}

	switch o.step {
	case stepWelcome:
		if key == "enter" || key == "space" {
			o.step = stepName
		}

	case stepName:
		if key != "enter" {
			var cmd tea.Cmd
			o.name, cmd = o.name.Update(msg)
			return cmd
		}
		if strings.TrimSpace(o.name.Value()) == "" {
			o.errMsg = "Tell us what to call you"
			return nil
		}
		o.errMsg = ""
		o.step = stepInterests
		o.cursor = 0

	case stepInterests:
		switch key {
		case "up", "k":
			o.cursor = max(o.cursor-1, 0)
		case "down", "j":
			o.cursor = min(o.cursor+1, len(o.categories)-1)
		case "space", "x":
			o.toggleInterest()
		case "enter":
			o.step = stepReminders
			o.cursor = 0
		}

	case stepReminders:
		switch key {
		case "up", "k", "down", "j":
			o.cursor = 1 - o.cursor
		case "space", "x":
			if o.cursor == 0 {
				o.dailyReminder = !o.dailyReminder
			} else {
				o.quizReminder = !o.quizReminder
			}
		case "enter":
			o.step = stepSaving
			o.errMsg = ""
			return o.save()
		}
	}
	return nil
}

func (o *OnboardingScreen) toggleInterest() {
	if o.cursor >= len(o.categories) {
		return
	}
	c := o.categories[o.cursor]
	if i := slices.Index(o.interests, c); i >= 0 {
		o.interests = slices.Delete(o.interests, i, i+1)
		return
	}
	o.interests = append(o.interests, c)
}

// Settings returns what the flow will save.
func (o *OnboardingScreen) Settings() store.UserSettings {
	s := store.DefaultSettings()
	s.Username = strings.TrimSpace(o.name.Value())
	s.Interests = slices.Clone(o.interests)
	slices.Sort(s.Interests)
	s.OnboardingComplete = true
	s.JoinDate = o.deps.Clock()
	s.NotificationsEnabled = o.dailyReminder
	s.QuizRemindersEnabled = o.quizReminder
	return s
}

func (o *OnboardingScreen) save() tea.Cmd {
	settings := o.Settings()
	progress, scheduler, log := o.deps.Progress, o.deps.Scheduler, o.deps.Log()
	return func() tea.Msg {
		if err := progress.SaveUserSettings(context.Background(), settings); err != nil {
			return savedMsg{err: err}
		}
		if scheduler != nil {
			if err := scheduler.Apply(settings); err != nil {
				log.Warn("schedule reminders failed", "error", err)
			}
		}
		log.Info("onboarding complete", "interests", len(settings.Interests))
		return savedMsg{}
	}
}

func (o *OnboardingScreen) transition() tea.Cmd {
	if o.transitioned {
		return nil
	}
	o.transitioned = true
	next := o.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (o *OnboardingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch o.step {
	case stepWelcome:
		body = o.viewWelcome(width)
	case stepName:
		body = strings.Join([]string{
			theme.Title.Width(cw).Render("What should we call you?"),
			o.name.View(),
		}, "\n\n")
	case stepInterests:
		body = o.viewInterests(cw)
	case stepReminders:
		body = o.viewReminders(cw)
	default:
		body = theme.Hint.Render("Setting things up…")
	}
	if o.errMsg != "" {
		body += "\n\n" + theme.Incorrect.Render(o.errMsg)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (o *OnboardingScreen) viewWelcome(width int) string {
	sparkle := sparkleFrames[o.tickCount%len(sparkleFrames)]
	s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
	s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

	tagline := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("One surprising fact a day.")
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press Enter to get started")

	return strings.Join([]string{
		RenderBanner(width),
		"",
		s1 + "  " + tagline + "  " + s2,
		"",
		hint,
	}, "\n")
}

func (o *OnboardingScreen) viewInterests(cw int) string {
	var lines []string
	for i, c := range o.categories {
		box := "[ ]"
		if slices.Contains(o.interests, c) {
			box = "[x]"
		}
		name := lipgloss.NewStyle().Foreground(theme.CategoryColor(c)).Render(c)
		prefix := "  "
		if i == o.cursor {
			prefix = theme.Selected.Render("▸ ")
		}
		lines = append(lines, prefix+box+" "+name)
	}
	return strings.Join([]string{
		theme.Title.Width(cw).Render("What are you curious about?"),
		components.Center(theme.Hint.Render("We'll show these first in Discover"), cw),
		strings.Join(lines, "\n"),
	}, "\n\n")
}

func (o *OnboardingScreen) viewReminders(cw int) string {
	def := store.DefaultSettings()
	rows := []struct {
		label string
		on    bool
	}{
		{"Remind me of the fact of the day at " + def.DailyReminderTime, o.dailyReminder},
		{"Nudge me to take a quiz at " + def.QuizReminderTime, o.quizReminder},
	}
	var lines []string
	for i, r := range rows {
		box := "[ ]"
		if r.on {
			box = "[x]"
		}
		prefix := "  "
		if i == o.cursor {
			prefix = theme.Selected.Render("▸ ")
		}
		lines = append(lines, prefix+box+" "+theme.Body.Render(r.label))
	}
	return strings.Join([]string{
		theme.Title.Width(cw).Render("Reminders"),
		components.Center(theme.Hint.Render("You can change these later in Settings"), cw),
		strings.Join(lines, "\n"),
	}, "\n\n")
}
