package quiz

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	engine "github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// historyRows is how many past results the history view lists.
const historyRows = 10

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch s.ctl.Session().Phase() {
	case engine.PhasePlaying:
		body = s.viewPlaying(cw)
	case engine.PhaseResult:
		body = s.viewResult(cw)
	case engine.PhaseHistory:
		body = s.viewHistory(cw)
	default:
		body = s.viewOverview(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuizScreen) viewOverview(cw int) string {
	sections := []string{
		theme.Title.Width(cw).Render("Pick a quiz"),
		components.Center(theme.Hint.Render("Challenge bonus XP is paid once a day (daily) and once a week (weekly)"), cw),
		s.menu.View(),
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	return strings.Join(sections, "\n\n")
}

func (s *QuizScreen) viewPlaying(cw int) string {
	sess := s.ctl.Session()
	cfg := sess.Config()

	if s.handover {
		return strings.Join([]string{
			components.Banner("Player 1 scored "+fmt.Sprint(sess.PlayerScores()[0]), cw),
			components.Center(theme.Title.Render("Player 2, your turn!"), cw),
			components.Center(theme.Hint.Render("Hand over the keyboard and press Enter"), cw),
		}, "\n\n")
	}

	q, ok := sess.Current()
	if !ok {
		return strings.Join([]string{
			components.Center(theme.Warning.Render("No questions available for this mode right now."), cw),
			components.Center(theme.Hint.Render("Press Enter to finish"), cw),
		}, "\n\n")
	}

	var sections []string
	sections = append(sections, s.statusLine(cw))
	if cfg.SessionClock {
		frac := float64(sess.Remaining()) / float64(max(cfg.TimerSeconds, 1))
		sections = append(sections, components.Bar(frac, cw, nil))
	} else {
		sections = append(sections, components.Bar(sess.Progress(), cw, nil))
	}

	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 6).Render(q.Prompt)
	if q.Image != "" {
		prompt = components.Center(lipgloss.NewStyle().Bold(true).Render(q.Image), cw-6) + "\n\n" + prompt
	}
	category := lipgloss.NewStyle().Foreground(theme.CategoryColor(q.Category)).Render(q.Category)
	sections = append(sections, components.Card(category+"\n\n"+prompt, cw, theme.CategoryColor(q.Category)))

	if q.Kind == engine.KindFillBlank {
		sections = append(sections, s.input.View())
	} else {
		sections = append(sections, s.choice.View())
	}

	if fb := sess.Feedback(); fb != nil && sess.Resolved() && !cfg.SessionClock {
		sections = append(sections, renderFeedback(fb, cw))
	} else if s.flash != nil {
		sections = append(sections, renderFlash(s.flash))
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	return strings.Join(sections, "\n\n")
}

func (s *QuizScreen) statusLine(cw int) string {
	sess := s.ctl.Session()
	cfg := sess.Config()

	left := fmt.Sprintf("Q %d/%d", sess.Index()+1, sess.Len())
	if cfg.SessionClock {
		left = fmt.Sprintf("Answered %d", sess.Index())
	}
	if cfg.TwoPlayer {
		player := 1
		if sess.Stage() == engine.StagePlayer2 {
			player = 2
		}
		left = fmt.Sprintf("Player %d · %s", player, left)
	}

	timer := fmt.Sprintf("⏱ %ds", sess.Remaining())
	timerStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if sess.Remaining() <= 5 {
		timerStyle = timerStyle.Foreground(theme.Error)
	}
	if !sess.TimerRunning() {
		timerStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	mid := fmt.Sprintf("Score %d  🔥 %d", sess.Score(), sess.Streak())
	line := theme.Body.Render(left) + "   " + lipgloss.NewStyle().Foreground(theme.Gold).Render(mid) + "   " + timerStyle.Render(timer)
	return components.Center(line, cw)
}

func renderFeedback(fb *engine.Feedback, cw int) string {
	var head string
	switch {
	case fb.TimedOut:
		head = theme.Warning.Render("⏰ Time's up!")
	case fb.Correct:
		head = theme.Correct.Render("✓ Correct!")
	default:
		head = theme.Incorrect.Render("✗ Not quite")
	}
	lines := []string{head}
	if !fb.Correct {
		lines = append(lines, theme.Body.Render("Answer: "+fb.Question.CorrectText()))
	}
	if fb.Question.Explanation != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(fb.Question.Explanation))
	}
	lines = append(lines, theme.Hint.Render("Press Enter to continue"))
	return strings.Join(lines, "\n")
}

func renderFlash(fb *engine.Feedback) string {
	if fb.Correct {
		return theme.Correct.Render("✓ previous answer correct")
	}
	return theme.Incorrect.Render("✗ previous: " + fb.Question.CorrectText())
}

func (s *QuizScreen) viewResult(cw int) string {
	sess := s.ctl.Session()
	cfg := sess.Config()

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(cfg.Icon+"  "+cfg.Title+" complete"))

	if cfg.TwoPlayer {
		scores := sess.PlayerScores()
		var verdict string
		switch {
		case scores[0] > scores[1]:
			verdict = "Player 1 wins!"
		case scores[1] > scores[0]:
			verdict = "Player 2 wins!"
		default:
			verdict = "It's a tie!"
		}
		sections = append(sections,
			components.Card(fmt.Sprintf("Player 1: %d\nPlayer 2: %d\n\n%s", scores[0], scores[1], verdict), cw, theme.Gold))
		return strings.Join(sections, "\n\n")
	}

	res := sess.Result()
	if res == nil {
		return strings.Join(sections, "\n\n")
	}
	summary := fmt.Sprintf("Score     %d / %d  (%d%%)\nBest run  %d in a row", res.Score, res.Total, res.Percent(), res.BestStreak)
	if s.lastBonus > 0 {
		summary += fmt.Sprintf("\nBonus     +%d XP", s.lastBonus)
	}
	accent := theme.Secondary
	if res.Perfect() {
		sections = append(sections, components.Banner("Perfect score!", cw))
		accent = theme.Gold
	}
	sections = append(sections, components.Card(summary, cw, accent))
	return strings.Join(sections, "\n\n")
}

func (s *QuizScreen) viewHistory(cw int) string {
	if len(s.history) == 0 {
		return components.Center(theme.Hint.Render("No quizzes played yet"), cw)
	}

	sum := engine.Summarize(s.history)
	header := fmt.Sprintf("%d quizzes · average %d%% · best run %d", sum.Count, sum.AvgPercent, sum.BestStreak)

	recent := slices.Clone(s.history)
	slices.Reverse(recent)
	if len(recent) > historyRows {
		recent = recent[:historyRows]
	}

	var rows []string
	for _, r := range recent {
		title := string(r.Mode)
		if cfg, ok := engine.LookupMode(r.Mode); ok {
			title = cfg.Icon + " " + cfg.Title
		}
		rows = append(rows, fmt.Sprintf("%-10s  %-24s %3d/%-3d %3d%%",
			r.Timestamp.Local().Format("Jan 02"), title, r.Score, r.Total, r.Percent()))
	}

	return strings.Join([]string{
		components.Center(lipgloss.NewStyle().Foreground(theme.Gold).Render(header), cw),
		components.Card(strings.Join(rows, "\n"), cw, nil),
	}, "\n\n")
}
