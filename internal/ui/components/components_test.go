package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
)

func keyPress(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Locked", Disabled: true},
		{Label: "Discover", Action: func() tea.Cmd { called = "discover"; return nil }},
		{Label: "Friends", Disabled: true},
		{Label: "Quiz", Action: func() tea.Cmd { called = "quiz"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down at end moved to %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up past disabled items: Selected = %d, want 1", m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if called != "discover" {
		t.Errorf("enter ran %q, want discover", called)
	}
}

func TestMultiChoice(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyPressMsg
		want int
	}{
		{"enter on first", []tea.KeyPressMsg{{Code: tea.KeyEnter}}, 0},
		{"down then enter", []tea.KeyPressMsg{{Code: tea.KeyDown}, {Code: tea.KeyDown}, {Code: tea.KeyEnter}}, 2},
		{"number key", []tea.KeyPressMsg{keyPress('4')}, 3},
		{"out of range number ignored", []tea.KeyPressMsg{keyPress('9'), {Code: tea.KeyEnter}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := NewMultiChoice([]string{"Mercury", "Venus", "Earth", "Mars"})
			for _, k := range tt.keys {
				mc, _ = mc.Update(k)
			}
			if !mc.Submitted || mc.Chosen != tt.want {
				t.Errorf("Submitted = %v, Chosen = %d; want true, %d", mc.Submitted, mc.Chosen, tt.want)
			}
		})
	}
}

func TestMultiChoice_IgnoresKeysAfterSubmit(t *testing.T) {
	mc := NewMultiChoice([]string{"True", "False"})
	mc, _ = mc.Update(keyPress('2'))
	mc, _ = mc.Update(keyPress('1'))
	if mc.Chosen != 1 {
		t.Errorf("Chosen = %d, want 1", mc.Chosen)
	}
	mc.Reveal(0)
	if v := mc.View(); !strings.Contains(v, "True") || !strings.Contains(v, "False") {
		t.Errorf("View() = %q", v)
	}
}

func TestTextInput_Allow(t *testing.T) {
	ti := NewTextInput("HH:MM", 5)
	ti.Allow = TimeChars
	for _, r := range "0a7:3x0" {
		ti, _ = ti.Update(keyPress(r))
	}
	if got := ti.Value(); got != "07:30" {
		t.Errorf("Value() = %q, want 07:30", got)
	}
}

func TestBar_Width(t *testing.T) {
	for _, frac := range []float64{-1, 0, 0.5, 1, 3} {
		if got := lipgloss.Width(Bar(frac, 30, nil)); got != 30 {
			t.Errorf("Bar(%v) width = %d, want 30", frac, got)
		}
	}
	if got := lipgloss.Width(LabeledBar("Lv 2", 0.4, 40, nil)); got != 40 {
		t.Errorf("LabeledBar width = %d, want 40", got)
	}
}

func TestTextInput_Submit(t *testing.T) {
	ti := NewTextInput("", 0)
	ti.SetValue("Mars")
	if ti.Submitted() {
		t.Fatal("Submitted() before Submit")
	}
	ti.Submit(false)
	if !ti.Submitted() || !strings.Contains(ti.View(), "✗") {
		t.Errorf("View() = %q, want a ✗ mark", ti.View())
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct{ in, want int }{{10, 20}, {50, 44}, {200, 64}}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFactCard(t *testing.T) {
	f := content.Fact{ID: "f1", Title: "Octopuses have three hearts", Body: "Two pump blood to the gills.", Category: "Animals", Emoji: "🐙", Source: "NOAA"}

	plain := FactCard(f, 50, false)
	for _, want := range []string{"ANIMALS", "Octopuses have three hearts", "Source: NOAA"} {
		if !strings.Contains(plain, want) {
			t.Errorf("FactCard missing %q", want)
		}
	}
	if strings.Contains(plain, "★") {
		t.Error("non-favourite card shows a star")
	}
	if !strings.Contains(FactCard(f, 50, true), "★") {
		t.Error("favourite card should show a star")
	}
}
