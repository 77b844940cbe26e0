// Package discover is the fact feed. Every fact shown counts as read, and
// any fact can be favourited from here.
package discover

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/progression"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

type feedLoadedMsg struct {
	facts     []content.Fact
	favorites []string
	read      []string
}

type readMarkedMsg struct {
	id  string
	err error
}

type favoriteToggledMsg struct {
	id       string
	favorite bool
	err      error
}

// DiscoverScreen pages through facts one card at a time.
type DiscoverScreen struct {
	deps *screen.Deps

	all   []content.Fact
	facts []content.Fact
	index int

	// category filters the feed; empty shows everything.
	category   string
	categories []string

	favorites map[string]bool
	read      map[string]bool
	// seenBefore holds facts that were already read when the feed loaded.
	seenBefore map[string]bool

	loaded bool
	errMsg string
}

var (
	_ screen.Screen          = (*DiscoverScreen)(nil)
	_ screen.KeyHintProvider = (*DiscoverScreen)(nil)
)

func New(deps *screen.Deps) *DiscoverScreen {
	return &DiscoverScreen{
		deps:       deps,
		favorites:  make(map[string]bool),
		read:       make(map[string]bool),
		seenBefore: make(map[string]bool),
	}
}

func (s *DiscoverScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx := context.Background()
		facts := deps.Content.DiscoveryFacts()
		interests := deps.Progress.LoadUserSettings(ctx).Interests
		if len(interests) > 0 {
			// Stable, so the shuffle survives inside each group.
			slices.SortStableFunc(facts, func(a, b content.Fact) int {
				return boolRank(slices.Contains(interests, a.Category)) - boolRank(slices.Contains(interests, b.Category))
			})
		}

		var favs []string
		for _, f := range deps.Progress.LoadFavorites(ctx) {
			favs = append(favs, f.ID)
		}
		return feedLoadedMsg{facts: facts, favorites: favs, read: deps.Progress.LoadReadFacts(ctx)}
	}
}

func boolRank(preferred bool) int {
	if preferred {
		return 0
	}
	return 1
}

func (s *DiscoverScreen) Title() string {
	return "Discover"
}

func (s *DiscoverScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Browse"},
		{Key: "F", Description: "Favourite"},
		{Key: "C", Description: "Category"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DiscoverScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedLoadedMsg:
		s.all = msg.facts
		for _, id := range msg.favorites {
			s.favorites[id] = true
		}
		for _, id := range msg.read {
			s.read[id] = true
			s.seenBefore[id] = true
		}
		for _, f := range s.all {
			if !slices.Contains(s.categories, f.Category) {
				s.categories = append(s.categories, f.Category)
			}
		}
		slices.Sort(s.categories)
		s.loaded = true
		s.applyFilter()
		return s, s.markCurrent()

	case readMarkedMsg:
		if msg.err != nil {
			s.deps.Log().Warn("mark read failed", "fact", msg.id, "error", msg.err)
			return s, nil
		}
		s.read[msg.id] = true
		return s, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			s.errMsg = "Could not update favourites"
			s.deps.Log().Warn("toggle favourite failed", "fact", msg.id, "error", msg.err)
			return s, nil
		}
		s.errMsg = ""
		s.favorites[msg.id] = msg.favorite
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *DiscoverScreen) handleKey(key string) tea.Cmd {
	if !s.loaded || len(s.facts) == 0 {
		if key == "c" {
			s.nextCategory()
			return s.markCurrent()
		}
		return nil
	}

	switch key {
	case "right", "l", "n", "space", "enter", "down", "j":
		if s.index < len(s.facts)-1 {
			s.index++
			return s.markCurrent()
		}
	case "left", "h", "p", "up", "k":
		if s.index > 0 {
			s.index--
		}
	case "f":
		return s.toggleFavorite(s.facts[s.index])
	case "c":
		s.nextCategory()
		return s.markCurrent()
	}
	return nil
}

func (s *DiscoverScreen) nextCategory() {
	switch i := slices.Index(s.categories, s.category); {
	case s.category == "" && len(s.categories) > 0:
		s.category = s.categories[0]
	case i >= 0 && i < len(s.categories)-1:
		s.category = s.categories[i+1]
	default:
		s.category = ""
	}
	s.applyFilter()
}

func (s *DiscoverScreen) applyFilter() {
	s.index = 0
	if s.category == "" {
		s.facts = s.all
		return
	}
	s.facts = slices.DeleteFunc(slices.Clone(s.all), func(f content.Fact) bool { return f.Category != s.category })
}

// markCurrent records the fact on screen as read, once.
func (s *DiscoverScreen) markCurrent() tea.Cmd {
	if s.index >= len(s.facts) {
		return nil
	}
	id := s.facts[s.index].ID
	if s.read[id] {
		return nil
	}
	s.read[id] = true
	progress := s.deps.Progress
	return func() tea.Msg {
		return readMarkedMsg{id: id, err: progress.MarkRead(context.Background(), id)}
	}
}

func (s *DiscoverScreen) toggleFavorite(f content.Fact) tea.Cmd {
	progress := s.deps.Progress
	want := !s.favorites[f.ID]
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if want {
			err = progress.SaveFavorite(ctx, f)
		} else {
			err = progress.RemoveFavorite(ctx, f.ID)
		}
		return favoriteToggledMsg{id: f.ID, favorite: want, err: err}
	}
}

func (s *DiscoverScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Loading facts…"))
	}

	filter := "All categories"
	if s.category != "" {
		filter = s.category
	}
	var sections []string
	sections = append(sections, components.Center(
		lipgloss.NewStyle().Foreground(theme.CategoryColor(s.category)).Render("◆ "+filter), cw))

	if len(s.facts) == 0 {
		sections = append(sections, components.Center(theme.Hint.Render("No facts here yet"), cw))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
	}

	f := s.facts[s.index]
	sections = append(sections, components.FactCard(f, cw, s.favorites[f.ID]))

	status := fmt.Sprintf("%d / %d", s.index+1, len(s.facts))
	if !s.seenBefore[f.ID] {
		status += "   " + lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(fmt.Sprintf("NEW +%d XP", progression.XPPerFactRead))
	}
	sections = append(sections, components.Center(theme.Hint.Render(status), cw))
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
