package quiz

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	engine "github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/components"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/layout"
)

// QuizScreen renders the quiz controller's four phases and feeds it
// key presses and countdown ticks.
type QuizScreen struct {
	deps *screen.Deps
	ctl  *engine.Controller

	menu   components.Menu
	choice components.MultiChoice
	input  components.TextInput

	// handover is set between the two passes of a challenge until player 2
	// is ready; the second countdown starts when they press Enter.
	handover  bool
	lastBonus int
	history   []engine.Result

	// flash is the last blitz answer, shown while the next question is up.
	flash  *engine.Feedback
	errMsg string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.InputCapturer   = (*QuizScreen)(nil)
)

// New returns the quiz screen in the mode overview.
func New(deps *screen.Deps) *QuizScreen {
	s := &QuizScreen{deps: deps, ctl: deps.Quiz}
	s.menu = s.buildMenu()
	return s
}

// NewWithMode returns a quiz screen that starts mode immediately.
func NewWithMode(deps *screen.Deps, mode engine.Mode) *QuizScreen {
	s := New(deps)
	s.start(mode)
	return s
}

func (s *QuizScreen) buildMenu() components.Menu {
	var items []components.MenuItem
	for _, cfg := range engine.Modes() {
		mode := cfg.Mode
		items = append(items, components.MenuItem{
			Label:  cfg.Icon + "  " + cfg.Title,
			Hint:   cfg.Description,
			Action: func() tea.Cmd { return s.start(mode) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "📜  History",
		Action: func() tea.Cmd { return s.showHistory() },
	})
	return components.NewMenu(items)
}

func (s *QuizScreen) Init() tea.Cmd {
	sess := s.ctl.Session()
	if sess.Phase() == engine.PhasePlaying && sess.TimerRunning() {
		return tickCmd(sess.Token())
	}
	return nil
}

func (s *QuizScreen) Title() string {
	sess := s.ctl.Session()
	if sess.Phase() == engine.PhaseOverview {
		return "Quiz"
	}
	if sess.Phase() == engine.PhaseHistory {
		return "Quiz History"
	}
	return sess.Config().Title
}

// CapturingInput keeps Esc inside the screen while a quiz is running so it
// returns to the overview instead of leaving the screen.
func (s *QuizScreen) CapturingInput() bool {
	return s.ctl.Session().Phase() != engine.PhaseOverview
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	sess := s.ctl.Session()
	switch sess.Phase() {
	case engine.PhasePlaying:
		if s.handover || sess.Resolved() {
			return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Esc", Description: "Quit quiz"}}
		}
		if q, ok := sess.Current(); ok && q.Kind == engine.KindFillBlank {
			return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit quiz"}}
		}
		return []layout.KeyHint{{Key: "↑↓/1-4", Description: "Choose"}, {Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit quiz"}}
	case engine.PhaseResult:
		return []layout.KeyHint{{Key: "Enter", Description: "Modes"}, {Key: "R", Description: "Play again"}, {Key: "H", Description: "History"}}
	case engine.PhaseHistory:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Play"}, {Key: "Esc", Description: "Back"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s, s.handleTick(msg)
	case historyLoadedMsg:
		s.history = msg.results
		return s, nil
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.answeringText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	sess := s.ctl.Session()
	key := msg.String()

	switch sess.Phase() {
	case engine.PhaseOverview:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return cmd

	case engine.PhaseHistory:
		if key == "esc" || key == "enter" || key == "q" {
			s.ctl.BackToOverview()
		}
		return nil

	case engine.PhaseResult:
		switch key {
		case "enter", "esc":
			s.ctl.BackToOverview()
		case "r":
			return s.start(sess.Mode())
		case "h":
			return s.showHistory()
		}
		return nil
	}

	// Playing.
	if key == "esc" {
		s.ctl.BackToOverview()
		s.handover = false
		s.errMsg = ""
		return nil
	}
	if s.handover {
		if key == "enter" || key == "space" {
			s.handover = false
			return tickCmd(sess.Token())
		}
		return nil
	}
	if _, ok := sess.Current(); !ok || sess.Resolved() {
		if key == "enter" || key == "space" {
			return s.next()
		}
		return nil
	}
	return s.answerKey(msg)
}

func (s *QuizScreen) answerKey(msg tea.KeyPressMsg) tea.Cmd {
	q, ok := s.ctl.Session().Current()
	if !ok {
		return nil
	}

	if q.Kind == engine.KindFillBlank {
		if msg.String() != "enter" {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
		if strings.TrimSpace(s.input.Value()) == "" {
			s.errMsg = "Type an answer first"
			return nil
		}
		return s.submit(engine.Text(s.input.Value()))
	}

	if q.Kind == engine.KindTrueFalse {
		switch msg.String() {
		case "t", "y":
			return s.submit(engine.Bool(true))
		case "f", "n":
			return s.submit(engine.Bool(false))
		}
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Submitted {
		return nil
	}
	if q.Kind == engine.KindTrueFalse {
		return s.submit(engine.Bool(s.choice.Chosen == boolIndex(true)))
	}
	return s.submit(engine.Choice(s.choice.Chosen))
}

func (s *QuizScreen) submit(r engine.Response) tea.Cmd {
	out, err := s.ctl.Answer(context.Background(), r)
	if err != nil {
		s.errMsg = "Type an answer first"
		if !errors.Is(err, engine.ErrEmptyAnswer) {
			s.deps.Log().Warn("answer rejected", "error", err)
			s.errMsg = "That answer was not accepted, try again"
		}
		s.choice = components.NewMultiChoice(s.choice.Options)
		return nil
	}
	s.errMsg = ""
	if s.ctl.Session().Config().SessionClock {
		s.flash = out.Feedback
	}
	return s.apply(out)
}

func (s *QuizScreen) next() tea.Cmd {
	return s.apply(s.ctl.Next(context.Background()))
}

func (s *QuizScreen) handleTick(msg tickMsg) tea.Cmd {
	sess := s.ctl.Session()
	out := s.ctl.Tick(context.Background(), msg.token)
	var cmd tea.Cmd
	if out.Feedback != nil || out.Finished {
		cmd = s.apply(out)
	}
	if sess.Phase() == engine.PhasePlaying && sess.TimerRunning() && sess.Token() == msg.token && !s.handover {
		return tea.Batch(cmd, tickCmd(msg.token))
	}
	return cmd
}

// apply updates the widgets for an outcome and returns the countdown for
// the next question, if one is up.
func (s *QuizScreen) apply(out engine.Outcome) tea.Cmd {
	sess := s.ctl.Session()

	if out.Finished {
		s.lastBonus = out.BonusXP
		return nil
	}
	if out.StageChanged {
		s.handover = true
		s.prepare()
		return nil
	}

	if sess.Resolved() {
		// Feedback is showing; reveal it in the widget.
		if fb := sess.Feedback(); fb != nil {
			switch a := fb.Question.Answer.(type) {
			case engine.ChoiceAnswer:
				s.choice.Reveal(a.Correct)
			case engine.BoolAnswer:
				s.choice.Reveal(boolIndex(a.Correct))
			case engine.TextAnswer:
				s.input.Submit(fb.Correct)
			}
		}
		return nil
	}

	// A fresh question is up.
	s.prepare()
	if sess.Config().SessionClock {
		return nil
	}
	return tickCmd(sess.Token())
}

func (s *QuizScreen) start(mode engine.Mode) tea.Cmd {
	token, err := s.ctl.Start(context.Background(), mode)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.handover = false
	s.lastBonus = 0
	s.flash = nil

	if s.ctl.Session().Len() == 0 {
		// Nothing to ask. The view says so and Enter finishes with 0/0.
		return nil
	}
	s.prepare()
	return tickCmd(token)
}

// prepare resets the answer widgets for the current question.
func (s *QuizScreen) prepare() {
	q, ok := s.ctl.Session().Current()
	if !ok {
		return
	}
	switch a := q.Answer.(type) {
	case engine.ChoiceAnswer:
		s.choice = components.NewMultiChoice(a.Options)
	case engine.BoolAnswer:
		s.choice = components.NewMultiChoice([]string{"True", "False"})
	case engine.TextAnswer:
		s.input = components.NewTextInput("Type the missing word…", 40)
	}
}

func (s *QuizScreen) showHistory() tea.Cmd {
	s.ctl.ShowHistory()
	progress := s.deps.Progress
	return func() tea.Msg {
		return historyLoadedMsg{results: progress.LoadQuizHistory(context.Background())}
	}
}

func (s *QuizScreen) answeringText() bool {
	sess := s.ctl.Session()
	if sess.Phase() != engine.PhasePlaying || sess.Resolved() || s.handover {
		return false
	}
	q, ok := sess.Current()
	return ok && q.Kind == engine.KindFillBlank
}

// boolIndex maps a true/false answer onto the True/False option list.
func boolIndex(v bool) int {
	if v {
		return 0
	}
	return 1
}
