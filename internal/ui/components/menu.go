package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

var menuKeys = struct {
	Up, Down, Choose key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Choose: key.NewBinding(key.WithKeys("enter")),
}

// Menu is a vertical list of actions. The cursor skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// next finds the first enabled item after from, moving by dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, menuKeys.Up):
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(k, menuKeys.Down):
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(k, menuKeys.Choose):
		if m.Selected < len(m.Items) {
			if it := m.Items[m.Selected]; !it.Disabled && it.Action != nil {
				return m, it.Action()
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, it := range m.Items {
		style, mark := theme.Body, "   "
		switch {
		case it.Disabled:
			style = theme.Hint
		case i == m.Selected:
			style, mark = theme.Selected, " ▸ "
		}
		lines[i] = style.Render(mark + it.Label)
		if it.Hint != "" {
			lines[i] += "  " + theme.Hint.Render(it.Hint)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
