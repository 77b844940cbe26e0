package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/progression"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/router"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/screens/discover"
	"github.com/sjostromVilgot/Facta-sub000/internal/screens/favorites"
	"github.com/sjostromVilgot/Facta-sub000/internal/screens/friends"
	"github.com/sjostromVilgot/Facta-sub000/internal/screens/profile"
	quizscreen "github.com/sjostromVilgot/Facta-sub000/internal/screens/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/screens/settings"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
	"github.com/sjostromVilgot/Facta-sub000/internal/streak"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

type homeLoadedMsg struct {
	profile   progression.Profile
	username  string
	fact      content.Fact
	favorite  bool
	dailyDone bool
}

type favoriteMsg struct {
	favorite bool
	err      error
}

const menuDaily = 2

// HomeScreen shows the fact of the day, the player's level and streak, and
// the main menu. Opening it counts as today's activity.
type HomeScreen struct {
	deps *screen.Deps
	menu components.Menu

	loaded    bool
	profile   progression.Profile
	username  string
	fact      content.Fact
	favorite  bool
	dailyDone bool
	errMsg    string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates a HomeScreen. Its data loads in Init.
func New(deps *screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "DISCOVER", Action: func() tea.Cmd { return router.Push(discover.New(deps)) }},
		{Label: "QUIZ", Action: func() tea.Cmd { return router.Push(quizscreen.New(deps)) }},
		{Label: "DAILY CHALLENGE", Hint: "done for today ✓", Action: func() tea.Cmd {
			return router.Push(quizscreen.NewWithMode(deps, quiz.ModeDaily))
		}},
		{Label: "FAVOURITES", Action: func() tea.Cmd { return router.Push(favorites.New(deps)) }},
		{Label: "PROFILE", Action: func() tea.Cmd { return router.Push(profile.New(deps)) }},
		{Label: "FRIENDS", Action: func() tea.Cmd { return router.Push(friends.New(deps)) }},
		{Label: "SETTINGS", Action: func() tea.Cmd { return router.Push(settings.New(deps)) }},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

// Init reloads everything, so returning from another screen refreshes the
// numbers. The fact of the day is marked read before the profile is
// computed so that it counts straight away.
func (h *HomeScreen) Init() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		now := deps.Clock()

		fact := deps.Content.DailyFact(now)
		if fact.ID != "" {
			if err := deps.Progress.MarkRead(ctx, fact.ID); err != nil {
				deps.Log().Warn("mark daily fact read failed", "fact", fact.ID, "error", err)
			}
		}

		return homeLoadedMsg{
			profile:   deps.Aggregator.Load(ctx),
			username:  deps.Progress.LoadUserSettings(ctx).Username,
			fact:      fact,
			favorite:  fact.ID != "" && deps.Progress.IsFavorite(ctx, fact.ID),
			dailyDone: playedToday(ctx, deps.Progress, now),
		}
	}
}

// playedToday reports whether the daily challenge was finished on now's
// calendar day.
func playedToday(ctx context.Context, p *store.Progress, now time.Time) bool {
	today := streak.DayKey(now)
	for _, r := range p.LoadQuizHistory(ctx) {
		if r.Mode == quiz.ModeDaily && streak.DayKey(r.Timestamp.In(now.Location())) == today {
			return true
		}
	}
	return false
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "F", Description: "Favourite fact"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		h.loaded = true
		h.profile = msg.profile
		h.username = msg.username
		h.fact = msg.fact
		h.favorite = msg.favorite
		h.dailyDone = msg.dailyDone
		h.menu.Items[menuDaily].Disabled = msg.dailyDone
		if msg.dailyDone && h.menu.Selected == menuDaily {
			h.menu.Selected = 0
		}
		stats := screen.StatsMsg{Level: msg.profile.Stats.Level, Streak: msg.profile.Stats.StreakDays}
		return h, func() tea.Msg { return stats }

	case favoriteMsg:
		if msg.err != nil {
			h.errMsg = "Could not update favourites"
			h.deps.Log().Warn("toggle favourite failed", "fact", h.fact.ID, "error", msg.err)
			return h, nil
		}
		h.errMsg = ""
		h.favorite = msg.favorite
		return h, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "f":
			return h, h.toggleFavorite()
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) toggleFavorite() tea.Cmd {
	if !h.loaded || h.fact.ID == "" {
		return nil
	}
	fact, want, progress := h.fact, !h.favorite, h.deps.Progress
	return func() tea.Msg {
		ctx := context.Background()
		if want {
			return favoriteMsg{favorite: true, err: progress.SaveFavorite(ctx, fact)}
		}
		return favoriteMsg{favorite: false, err: progress.RemoveFavorite(ctx, fact.ID)}
	}
}

func (h *HomeScreen) mascot() MascotVariant {
	st := h.profile.Stats
	switch {
	case st.HasLeveledUp || h.profile.MilestoneBonus > 0:
		return MascotCelebrating
	case h.profile.Streak.CurrentStreak == 1 && h.profile.Streak.LongestStreak > 1:
		return MascotAlert
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 40 || width < 100
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !h.loaded {
		sections = append(sections, components.Center(theme.Hint.Render("Loading…"), cw))
		return renderFrame(strings.Join(sections, "\n\n"), width, height)
	}

	if h.username != "" {
		sections = append(sections, components.Center(theme.Subtitle.Render("Hi, "+h.username+"!"), cw))
	}
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	if banner := h.rewardBanner(); banner != "" {
		sections = append(sections, components.Banner(banner, cw))
	}

	st := h.profile.Stats
	sections = append(sections, renderStatsBar(dashboard{
		level:         st.Level,
		xpToNext:      st.XPToNext,
		streak:        st.StreakDays,
		nextMilestone: streak.NextMilestone(st.StreakDays),
		factsRead:     st.TotalFactsRead,
	}, cw, compact))

	if h.fact.ID != "" {
		label := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render("💡 FACT OF THE DAY")
		sections = append(sections, components.Center(label, cw)+"\n"+components.FactCard(h.fact, cw, h.favorite))
	}

	labels := make([]string, len(h.menu.Items))
	hints := make([]string, len(h.menu.Items))
	for i, item := range h.menu.Items {
		labels[i], hints[i] = item.Label, item.Hint
	}
	sections = append(sections, renderMenu(labels, hints, h.menu.Selected,
		func(i int) bool { return h.menu.Items[i].Disabled }, cw))

	if h.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(h.errMsg))
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) rewardBanner() string {
	p := h.profile
	switch {
	case p.Stats.HasLeveledUp:
		return fmt.Sprintf("⬆ Level %d reached!", p.Stats.Level)
	case p.MilestoneBonus > 0:
		return fmt.Sprintf("🔥 %d-day streak! +%d XP", p.Streak.CurrentStreak, p.MilestoneBonus)
	case p.DailyReward > 0:
		return fmt.Sprintf("Daily bonus +%d XP", p.DailyReward)
	}
	return ""
}
