// Package settings edits the player's name and reminder preferences.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/notify"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

type settingsLoadedMsg struct {
	settings store.UserSettings
}

type savedMsg struct {
	err error
}

type field int

const (
	fieldName field = iota
	fieldDaily
	fieldDailyTime
	fieldQuiz
	fieldQuizTime
	fieldCount
)

const nameLimit = 24

// SettingsScreen is a list of fields. Toggles flip in place; text fields
// open an inline editor. Every accepted change is saved immediately and
// reapplied to the reminder scheduler.
type SettingsScreen struct {
	deps     *screen.Deps
	settings store.UserSettings
	cursor   field
	loaded   bool

	editing bool
	input   components.TextInput

	status string
	errMsg string
}

var (
	_ screen.Screen          = (*SettingsScreen)(nil)
	_ screen.KeyHintProvider = (*SettingsScreen)(nil)
	_ screen.InputCapturer   = (*SettingsScreen)(nil)
)

func New(deps *screen.Deps) *SettingsScreen {
	return &SettingsScreen{deps: deps}
}

func (s *SettingsScreen) Init() tea.Cmd {
	progress := s.deps.Progress
	return func() tea.Msg {
		return settingsLoadedMsg{settings: progress.LoadUserSettings(context.Background())}
	}
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) CapturingInput() bool {
	return s.editing
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{{Key: "Enter", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		s.settings = msg.settings
		s.loaded = true
		return s, nil

	case savedMsg:
		if msg.err != nil {
			s.deps.Log().Warn("save settings failed", "error", msg.err)
			s.errMsg = "Some changes could not be applied"
			s.status = ""
			return s, nil
		}
		s.errMsg = ""
		s.status = "Saved"
		return s, nil

	case tea.KeyPressMsg:
		if !s.loaded {
			return s, nil
		}
		if s.editing {
			return s, s.handleEditKey(msg)
		}
		return s, s.handleKey(msg.String())
	}

	if s.editing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		s.cursor = (s.cursor + fieldCount - 1) % fieldCount
	case "down", "j", "tab":
		s.cursor = (s.cursor + 1) % fieldCount
	case "enter", "space":
		return s.activate()
	}
	return nil
}

func (s *SettingsScreen) activate() tea.Cmd {
	s.status = ""
	switch s.cursor {
	case fieldDaily:
		s.settings.NotificationsEnabled = !s.settings.NotificationsEnabled
		return s.save()
	case fieldQuiz:
		s.settings.QuizRemindersEnabled = !s.settings.QuizRemindersEnabled
		return s.save()
	case fieldName:
		s.input = components.NewTextInput("Your name", nameLimit)
		s.input.SetValue(s.settings.Username)
	case fieldDailyTime, fieldQuizTime:
		s.input = components.NewTextInput("HH:MM", 5)
		s.input.Allow = components.TimeChars
		s.input.SetValue(s.timeValue())
	}
	s.editing = true
	s.errMsg = ""
	return nil
}

func (s *SettingsScreen) handleEditKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.editing = false
		s.errMsg = ""
		return nil
	case "enter":
		if problem := s.commit(strings.TrimSpace(s.input.Value())); problem != "" {
			s.errMsg = problem
			return nil
		}
		s.editing = false
		s.errMsg = ""
		return s.save()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// commit writes v into the field under the cursor, or says what is wrong
// with it.
func (s *SettingsScreen) commit(v string) string {
	switch s.cursor {
	case fieldName:
		if v == "" {
			return "Name cannot be empty"
		}
		s.settings.Username = v
	case fieldDailyTime, fieldQuizTime:
		h, m, err := notify.ParseTime(v)
		if err != nil {
			return "Use a 24-hour time like 09:30"
		}
		hhmm := fmt.Sprintf("%02d:%02d", h, m)
		if s.cursor == fieldDailyTime {
			s.settings.DailyReminderTime = hhmm
		} else {
			s.settings.QuizReminderTime = hhmm
		}
	}
	return ""
}

func (s *SettingsScreen) timeValue() string {
	if s.cursor == fieldQuizTime {
		return s.settings.QuizReminderTime
	}
	return s.settings.DailyReminderTime
}

func (s *SettingsScreen) save() tea.Cmd {
	settings := s.settings
	progress := s.deps.Progress
	scheduler := s.deps.Scheduler
	return func() tea.Msg {
		err := progress.SaveUserSettings(context.Background(), settings)
		if scheduler != nil {
			err = errors.Join(err, scheduler.Apply(settings))
		}
		return savedMsg{err: err}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Loading…"))
	}
	cw := components.ContentWidth(width)

	rows := []struct {
		label, value string
		dim          bool
	}{
		{"Name", s.settings.Username, false},
		{"Daily fact reminder", onOff(s.settings.NotificationsEnabled), false},
		{"  at", s.settings.DailyReminderTime, !s.settings.NotificationsEnabled},
		{"Quiz reminder", onOff(s.settings.QuizRemindersEnabled), false},
		{"  at", s.settings.QuizReminderTime, !s.settings.QuizRemindersEnabled},
	}

	label := lipgloss.NewStyle().Width(24)
	var lines []string
	for i, r := range rows {
		value := r.value
		if s.editing && field(i) == s.cursor {
			value = s.input.View()
		}
		prefix, style := "  ", theme.Body
		switch {
		case field(i) == s.cursor:
			prefix, style = "▸ ", theme.Selected
		case r.dim:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		lines = append(lines, style.Render(prefix+label.Render(r.label))+value)
	}

	sections := []string{
		theme.Title.Width(cw).Render("Settings"),
		components.Card(strings.Join(lines, "\n"), cw, nil),
	}
	if next := s.nextReminder(); next != "" {
		sections = append(sections, components.Center(theme.Hint.Render(next), cw))
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	} else if s.status != "" {
		sections = append(sections, theme.Correct.Render("✓ "+s.status))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}

// nextReminder describes the earliest scheduled reminder.
func (s *SettingsScreen) nextReminder() string {
	sch := s.deps.Scheduler
	if sch == nil {
		return ""
	}
	now := s.deps.Clock()
	var best string
	var bestAt int64
	for _, k := range []notify.Kind{notify.KindDaily, notify.KindQuiz} {
		at, ok := sch.Next(k, now)
		if !ok {
			continue
		}
		if best == "" || at.Unix() < bestAt {
			best = fmt.Sprintf("Next %s reminder %s", k, at.Format("Mon 15:04"))
			bestAt = at.Unix()
		}
	}
	return best
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
