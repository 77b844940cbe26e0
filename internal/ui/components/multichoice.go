package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// MultiChoice is an option picker. It only tracks the cursor and the
// choice; whether the choice is right is decided by the caller, which
// passes it back through Reveal.
type MultiChoice struct {
	Options   []string
	Selected  int
	Submitted bool
	Chosen    int

	revealed bool
	correct  int
}

// NewMultiChoice creates a picker over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1, correct: -1}
}

// Update moves the cursor. Enter, or a number key 1..n, submits.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j", "right":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.submit(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(m.Options) {
			m.submit(int(key[0] - '1'))
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Selected = i
	m.Chosen = i
	m.Submitted = true
}

// Reveal marks the correct option for rendering. A negative index reveals
// nothing (e.g. on timeout when only the chosen option matters).
func (m *MultiChoice) Reveal(correct int) {
	m.revealed = true
	m.correct = correct
	m.Submitted = true
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.revealed && i == m.correct:
			style = theme.Correct
		case m.revealed && i == m.Chosen:
			style = theme.Incorrect
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
