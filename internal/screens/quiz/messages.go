package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"

	engine "github.com/sjostromVilgot/Facta-sub000/internal/quiz"
)

// tickMsg is one countdown second for the countdown identified by token.
type tickMsg struct {
	token uint64
}

// historyLoadedMsg carries the stored quiz history, oldest first.
type historyLoadedMsg struct {
	results []engine.Result
}

func tickCmd(token uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{token: token}
	})
}
