// Package friends is the social screen. There is no backend yet, so it only
// offers the same-device challenge.
package friends

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/router"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	quizscreen "github.com/sjostromVilgot/Facta-sub000/internal/screens/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// FriendsScreen is a "coming soon" screen with a link to challenge mode.
type FriendsScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*FriendsScreen)(nil)

func New(deps *screen.Deps) *FriendsScreen {
	return &FriendsScreen{
		menu: components.NewMenu([]components.MenuItem{
			{Label: "🤝  Challenge someone next to you", Action: func() tea.Cmd {
				return router.Push(quizscreen.NewWithMode(deps, quiz.ModeChallenge))
			}},
			{Label: "🌍  Online leaderboards", Hint: "coming soon", Disabled: true},
		}),
	}
}

func (f *FriendsScreen) Init() tea.Cmd {
	return nil
}

func (f *FriendsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	f.menu, cmd = f.menu.Update(msg)
	return f, cmd
}

func (f *FriendsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := strings.Join([]string{
		theme.Title.Width(cw).Render("Friends"),
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center).
			Render("╌╌ Coming Soon ╌╌\n\nAdd friends and compare streaks.\nUntil then, hand the keyboard over."),
		f.menu.View(),
	}, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (f *FriendsScreen) Title() string {
	return "Friends"
}
