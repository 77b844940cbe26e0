// Package profile shows the player's level, stats and badges.
package profile

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/leveling"
	"github.com/sjostromVilgot/Facta-sub000/internal/progression"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
	"github.com/sjostromVilgot/Facta-sub000/internal/streak"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

type profileLoadedMsg struct {
	profile  progression.Profile
	settings store.UserSettings
}

type tab int

const (
	tabStats tab = iota
	tabBadges
)

var tabNames = []string{"📊 Stats", "🏅 Badges"}

// ProfileScreen has a stats tab and a badges tab.
type ProfileScreen struct {
	deps     *screen.Deps
	profile  progression.Profile
	settings store.UserSettings
	tab      tab
	loaded   bool
}

var (
	_ screen.Screen          = (*ProfileScreen)(nil)
	_ screen.KeyHintProvider = (*ProfileScreen)(nil)
)

func New(deps *screen.Deps) *ProfileScreen {
	return &ProfileScreen{deps: deps}
}

func (s *ProfileScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx := context.Background()
		return profileLoadedMsg{
			profile:  deps.Aggregator.Load(ctx),
			settings: deps.Progress.LoadUserSettings(ctx),
		}
	}
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch tab"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.profile = msg.profile
		s.settings = msg.settings
		s.loaded = true
		stats := screen.StatsMsg{Level: msg.profile.Stats.Level, Streak: msg.profile.Stats.StreakDays}
		return s, func() tea.Msg { return stats }

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "right", "l":
			s.tab = (s.tab + 1) % tab(len(tabNames))
		case "shift+tab", "left", "h":
			s.tab = (s.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		}
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Loading profile…"))
	}
	cw := components.ContentWidth(width)
	st := s.profile.Stats

	var sections []string
	if st.HasLeveledUp {
		sections = append(sections, components.Banner(fmt.Sprintf("⬆ Level up! You reached level %d", st.Level), cw))
	}
	if r := s.profile.DailyReward + s.profile.MilestoneBonus; r > 0 {
		sections = append(sections, components.Center(
			lipgloss.NewStyle().Foreground(theme.Gold).Render(fmt.Sprintf("+%d XP in rewards today", r)), cw))
	}

	name := s.settings.Username
	if name == "" {
		name = "Fact fan"
	}
	sections = append(sections, theme.Title.Width(cw).Render(name))
	if !st.JoinDate.IsZero() {
		sections = append(sections, components.Center(theme.Subtitle.Render("Joined "+st.JoinDate.Format("January 2006")), cw))
	}

	sections = append(sections, s.renderLevel(cw), s.renderTabs(cw))
	if s.tab == tabBadges {
		sections = append(sections, s.renderBadges(cw))
	} else {
		sections = append(sections, s.renderStats(cw))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (s *ProfileScreen) renderLevel(cw int) string {
	st := s.profile.Stats
	bar := components.LabeledBar(fmt.Sprintf("Lv %d", st.Level), leveling.ProgressFraction(st.TotalXP), cw, theme.Gold)
	caption := fmt.Sprintf("%d XP total · %d to level %d", st.TotalXP, st.XPToNext, st.Level+1)
	return bar + "\n" + components.Center(theme.Hint.Render(caption), cw)
}

func (s *ProfileScreen) renderTabs(cw int) string {
	var tabs []string
	for i, name := range tabNames {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if tab(i) == s.tab {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(name))
	}
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	return components.Center(strings.Join(tabs, "     "), cw) + "\n" + divider
}

func (s *ProfileScreen) renderStats(cw int) string {
	st := s.profile.Stats
	fav := st.FavoriteCategory
	if fav == "" {
		fav = "none yet"
	}
	next := "all milestones reached"
	if m := streak.NextMilestone(st.StreakDays); m > 0 {
		next = fmt.Sprintf("%d days", m)
	}

	rows := [][2]string{
		{"🔥 Current streak", plural(st.StreakDays, "day")},
		{"🏔 Longest streak", plural(st.LongestStreak, "day")},
		{"🎯 Next milestone", next},
		{"📖 Facts read", fmt.Sprint(st.TotalFactsRead)},
		{"🧠 Quizzes", fmt.Sprint(st.TotalQuizzes)},
		{"📈 Average score", fmt.Sprintf("%d%%", st.AvgQuizScore)},
		{"⚡ Best answer run", fmt.Sprint(st.BestQuizStreak)},
		{"⭐ Favourites", fmt.Sprint(st.FavoritesCount)},
		{"❤ Favourite topic", fav},
		{"🏅 Badges", fmt.Sprintf("%d / %d", st.BadgesUnlocked, len(s.profile.Badges))},
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(24)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	var lines []string
	for _, r := range rows {
		lines = append(lines, label.Render(r[0])+value.Render(r[1]))
	}
	return components.Card(strings.Join(lines, "\n"), cw, nil)
}

func (s *ProfileScreen) renderBadges(cw int) string {
	var lines []string
	for _, b := range s.profile.Badges {
		if b.Unlocked {
			style := lipgloss.NewStyle().Foreground(badgeColor(b)).Bold(true)
			lines = append(lines, style.Render(b.Icon+"  "+b.Name)+"  "+theme.Body.Render(b.Description))
		} else {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔒  "+b.Name+"  "+b.Description))
		}
	}
	return components.Card(strings.Join(lines, "\n"), cw, nil)
}

func badgeColor(b progression.Badge) color.Color {
	if b.Color == "" {
		return theme.Gold
	}
	return lipgloss.Color(b.Color)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
