// Package favorites lists saved facts.
package favorites

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

type favoritesLoadedMsg struct {
	facts []content.Fact
}

type removedMsg struct {
	id  string
	err error
}

// visibleRows is how many titles fit above the open card.
const visibleRows = 8

// FavoritesScreen is a list of favourites with the selected one opened
// as a card below.
type FavoritesScreen struct {
	deps     *screen.Deps
	facts    []content.Fact
	selected int
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*FavoritesScreen)(nil)
	_ screen.KeyHintProvider = (*FavoritesScreen)(nil)
)

func New(deps *screen.Deps) *FavoritesScreen {
	return &FavoritesScreen{deps: deps}
}

func (s *FavoritesScreen) Init() tea.Cmd {
	progress := s.deps.Progress
	return func() tea.Msg {
		return favoritesLoadedMsg{facts: progress.LoadFavorites(context.Background())}
	}
}

func (s *FavoritesScreen) Title() string {
	return "Favourites"
}

func (s *FavoritesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Remove"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FavoritesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case favoritesLoadedMsg:
		s.facts = msg.facts
		s.loaded = true
		s.selected = min(s.selected, max(len(s.facts)-1, 0))

	case removedMsg:
		if msg.err != nil {
			s.errMsg = "Could not remove favourite"
			s.deps.Log().Warn("remove favourite failed", "fact", msg.id, "error", msg.err)
			return s, nil
		}
		s.errMsg = ""
		for i, f := range s.facts {
			if f.ID == msg.id {
				s.facts = append(s.facts[:i], s.facts[i+1:]...)
				break
			}
		}
		s.selected = min(s.selected, max(len(s.facts)-1, 0))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.facts)-1 {
				s.selected++
			}
		case "d", "x", "delete", "backspace":
			if s.selected < len(s.facts) {
				return s, s.remove(s.facts[s.selected].ID)
			}
		}
	}
	return s, nil
}

func (s *FavoritesScreen) remove(id string) tea.Cmd {
	progress := s.deps.Progress
	return func() tea.Msg {
		return removedMsg{id: id, err: progress.RemoveFavorite(context.Background(), id)}
	}
}

func (s *FavoritesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch {
	case !s.loaded:
		body = theme.Hint.Render("Loading…")
	case len(s.facts) == 0:
		body = strings.Join([]string{
			theme.Title.Width(cw).Render("No favourites yet"),
			components.Center(theme.Hint.Render("Press F on any fact in Discover to keep it here"), cw),
		}, "\n\n")
	default:
		body = strings.Join([]string{
			components.Center(theme.Subtitle.Render(fmt.Sprintf("%d saved", len(s.facts))), cw),
			s.renderList(cw),
			components.FactCard(s.facts[s.selected], cw, true),
		}, "\n\n")
	}
	if s.errMsg != "" {
		body += "\n\n" + theme.Incorrect.Render(s.errMsg)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *FavoritesScreen) renderList(cw int) string {
	start := 0
	if s.selected >= visibleRows {
		start = s.selected - visibleRows + 1
	}
	end := min(start+visibleRows, len(s.facts))

	var lines []string
	for i := start; i < end; i++ {
		f := s.facts[i]
		dot := lipgloss.NewStyle().Foreground(theme.CategoryColor(f.Category)).Render("●")
		title := truncate(f.Title, cw-6)
		if i == s.selected {
			lines = append(lines, theme.Selected.Render("▸ ")+dot+" "+theme.Selected.Render(title))
		} else {
			lines = append(lines, "  "+dot+" "+theme.Body.Render(title))
		}
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
