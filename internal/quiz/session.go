// Package quiz implements the quiz session state machine: question flow,
// countdowns, scoring and the two-player challenge stages.
package quiz

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Phase is the top-level screen state of a quiz.
type Phase int

const (
	PhaseOverview Phase = iota // Choosing a mode
	PhasePlaying               // Questions in progress
	PhaseResult                // Showing the finished result
	PhaseHistory               // Browsing past results
)

func (p Phase) String() string {
	switch p {
	case PhaseOverview:
		return "overview"
	case PhasePlaying:
		return "playing"
	case PhaseResult:
		return "result"
	case PhaseHistory:
		return "history"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Stage tracks whose turn it is in challenge mode. Single-player modes stay
// in StagePlayer1 until they finish.
type Stage int

const (
	StagePlayer1 Stage = iota
	StagePlayer2
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StagePlayer1:
		return "player1"
	case StagePlayer2:
		return "player2"
	case StageFinished:
		return "finished"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

var (
	ErrUnknownMode    = errors.New("unknown quiz mode")
	ErrNotPlaying     = errors.New("quiz is not in progress")
	ErrNoQuestion     = errors.New("no question to answer")
	ErrQuestionClosed = errors.New("question already answered")
)

// Feedback describes how the current question was resolved.
type Feedback struct {
	Question Question
	Given    Response
	Correct  bool
	TimedOut bool
}

// Outcome reports what a transition produced.
type Outcome struct {
	// Feedback is set when a question was resolved by an answer or timeout.
	Feedback *Feedback

	// StageChanged is set when challenge mode hands over to player 2.
	StageChanged bool

	// Finished is set when the session entered PhaseResult.
	Finished bool

	// Result is the record to persist. Challenge mode finishes without one.
	Result *Result

	// BonusXP is the extra XP earned by the finished result.
	BonusXP int
}

// Session is a single live quiz. It is not safe for concurrent use; one
// control flow owns it and feeds it answers and ticks.
type Session struct {
	mode      Mode
	cfg       ModeConfig
	questions []Question

	index      int
	score      int
	streak     int
	bestStreak int
	attempted  int

	// resolved is set once the current question is answered or timed out.
	resolved bool
	feedback *Feedback

	remaining    int
	timerRunning bool

	// token identifies the live countdown. Ticks carrying any other token
	// are stale and ignored.
	token uint64

	stage        Stage
	playerScores [2]int
	phase        Phase
	result       *Result
	startedAt    time.Time

	now func() time.Time
}

// NewSession returns a session in the overview phase. A nil clock uses
// time.Now.
func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{now: now}
}

// Start begins mode with the given questions, discarding any previous state,
// and starts the countdown. It returns the countdown token.
func (s *Session) Start(mode Mode, questions []Question) (uint64, error) {
	cfg, ok := LookupMode(mode)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	if s.now == nil {
		s.now = time.Now
	}
	s.reset()
	s.mode = mode
	s.cfg = cfg
	s.questions = slices.Clone(questions)
	s.phase = PhasePlaying
	s.startedAt = s.now()
	return s.startTimer(), nil
}

// Tick advances the countdown by one second. Ticks for any token other than
// the live one, or while no countdown runs, do nothing.
func (s *Session) Tick(token uint64) Outcome {
	if !s.timerRunning || token != s.token || s.phase != PhasePlaying {
		return Outcome{}
	}

	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return Outcome{}
	}

	s.stopTimer()
	if s.cfg.SessionClock {
		return s.finish()
	}

	s.streak = 0
	if s.resolved {
		return Outcome{}
	}
	s.resolved = true
	s.attempted++
	fb := &Feedback{TimedOut: true}
	if q, ok := s.Current(); ok {
		fb.Question = q
	}
	s.feedback = fb
	return Outcome{Feedback: fb}
}

// Answer evaluates r against the current question. Outside blitz the
// countdown stops and the session waits for Next. In blitz the session clock
// keeps running and the next question comes up immediately.
func (s *Session) Answer(r Response) (Outcome, error) {
	if s.phase != PhasePlaying {
		return Outcome{}, ErrNotPlaying
	}
	q, ok := s.Current()
	if !ok {
		return Outcome{}, ErrNoQuestion
	}
	if s.resolved {
		return Outcome{}, ErrQuestionClosed
	}

	correct, err := q.Evaluate(r)
	if err != nil {
		return Outcome{}, err
	}

	if correct {
		s.score++
		s.streak++
		s.bestStreak = max(s.bestStreak, s.streak)
	} else {
		s.streak = 0
	}
	s.attempted++
	s.resolved = true
	fb := &Feedback{Question: q, Given: r, Correct: correct}
	s.feedback = fb

	if s.cfg.SessionClock {
		out := s.Next()
		out.Feedback = fb
		return out, nil
	}

	s.stopTimer()
	return Outcome{Feedback: fb}, nil
}

// Next moves past the current question. When the set is exhausted it either
// hands over to player 2 (challenge) or finishes the session.
func (s *Session) Next() Outcome {
	if s.phase != PhasePlaying {
		return Outcome{}
	}

	s.index++
	s.resolved = false
	s.feedback = nil

	if s.index < len(s.questions) {
		if !s.cfg.SessionClock {
			s.startTimer()
		}
		return Outcome{}
	}

	if s.cfg.TwoPlayer {
		switch s.stage {
		case StagePlayer1:
			s.playerScores[0] = s.score
			s.score, s.streak, s.bestStreak, s.index, s.attempted = 0, 0, 0, 0, 0
			s.stage = StagePlayer2
			s.startTimer()
			return Outcome{StageChanged: true}
		case StagePlayer2:
			s.playerScores[1] = s.score
			s.stage = StageFinished
			s.stopTimer()
			s.phase = PhaseResult
			return Outcome{Finished: true}
		}
	}

	return s.finish()
}

// ShowHistory switches to the history view and stops any countdown.
func (s *Session) ShowHistory() {
	s.stopTimer()
	s.phase = PhaseHistory
}

// BackToOverview discards the session and stops any countdown.
func (s *Session) BackToOverview() {
	s.reset()
}

func (s *Session) finish() Outcome {
	s.stopTimer()
	s.phase = PhaseResult

	total := len(s.questions)
	if s.cfg.SessionClock {
		total = s.attempted
	}

	res := Result{
		ID:         uuid.NewString(),
		Timestamp:  s.now(),
		Mode:       s.mode,
		Score:      s.score,
		Total:      total,
		BestStreak: s.bestStreak,
	}
	s.result = &res
	return Outcome{Finished: true, Result: &res, BonusXP: s.cfg.Bonus.Award(res)}
}

// reset clears everything except the clock and the token counter, so that
// ticks from an earlier run can never match a later countdown.
func (s *Session) reset() {
	*s = Session{now: s.now, token: s.token + 1}
}

func (s *Session) startTimer() uint64 {
	s.token++
	s.remaining = s.cfg.TimerSeconds
	s.timerRunning = true
	return s.token
}

func (s *Session) stopTimer() {
	if s.timerRunning {
		s.token++
	}
	s.timerRunning = false
}

func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Config() ModeConfig { return s.cfg }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Stage() Stage { return s.stage }
func (s *Session) Index() int { return s.index }
func (s *Session) Len() int { return len(s.questions) }
func (s *Session) Score() int { return s.score }
func (s *Session) Streak() int { return s.streak }
func (s *Session) BestStreak() int { return s.bestStreak }
func (s *Session) Remaining() int { return s.remaining }
func (s *Session) TimerRunning() bool { return s.timerRunning }
func (s *Session) Token() uint64 { return s.token }
func (s *Session) Resolved() bool { return s.resolved }
func (s *Session) Feedback() *Feedback { return s.feedback }
func (s *Session) Result() *Result { return s.result }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) PlayerScores() [2]int { return s.playerScores }
func (s *Session) Questions() []Question { return slices.Clone(s.questions) }

// Current returns the question being asked, if any.
func (s *Session) Current() (Question, bool) {
	if s.phase != PhasePlaying || s.index < 0 || s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Progress returns the fraction of questions passed. An empty set is 0.
func (s *Session) Progress() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.index) / float64(len(s.questions))
}
