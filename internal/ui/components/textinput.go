package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// TextInput is a focused bubbles text input that can reject characters and,
// once submitted, shows whether the answer was right.
type TextInput struct {
	field textinput.Model

	// Allow, when set, drops keystrokes containing a rune it refuses.
	Allow func(rune) bool

	result *bool // nil until Submit
}

// NewTextInput returns a focused input. limit 0 means unlimited.
func NewTextInput(placeholder string, limit int) TextInput {
	f := textinput.New()
	f.Placeholder = placeholder
	f.CharLimit = limit
	f.Focus()
	return TextInput{field: f}
}

// TimeChars allows digits and ':' for HH:MM.
func TimeChars(r rune) bool { return r == ':' || ('0' <= r && r <= '9') }

func (t TextInput) Init() tea.Cmd { return t.field.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && t.Allow != nil {
		if strings.IndexFunc(k.Text, func(r rune) bool { return !t.Allow(r) }) >= 0 {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.field, cmd = t.field.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	v := t.field.View()
	switch {
	case t.result == nil:
	case *t.result:
		v += " " + theme.Correct.Render("✓")
	default:
		v += " " + theme.Incorrect.Render("✗")
	}
	return v
}

func (t TextInput) Value() string { return t.field.Value() }

func (t *TextInput) SetValue(s string) {
	t.field.SetValue(s)
	t.field.CursorEnd()
}

// Submit freezes the input and marks it right or wrong.
func (t *TextInput) Submit(correct bool) {
	t.result = &correct
	t.field.Blur()
}

func (t TextInput) Submitted() bool { return t.result != nil }
