package quiz

import (
	"context"
	"time"

	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
)

// QuestionSource supplies the question set for a mode.
type QuestionSource interface {
	QuizQuestions(ctx context.Context, mode Mode) ([]Question, error)
}

// Recorder persists finished results and bonus XP. ClaimBonus marks key as
// claimed and reports false if it already was.
type Recorder interface {
	SaveQuizResult(ctx context.Context, r Result) error
	AddBonusXP(ctx context.Context, amount int) error
	ClaimBonus(ctx context.Context, key string) (bool, error)
}

// Controller owns the live session and wires it to content and persistence.
// Source failures degrade to an empty question set; persistence failures are
// logged and otherwise ignored.
type Controller struct {
	session  *Session
	source   QuestionSource
	recorder Recorder
	log      *logger.Logger
}

// NewController creates a controller. recorder and log may be nil.
func NewController(source QuestionSource, recorder Recorder, log *logger.Logger, now func() time.Time) *Controller {
	return &Controller{
		session:  NewSession(now),
		source:   source,
		recorder: recorder,
		log:      logger.OrNop(log).With("component", "quiz"),
	}
}

// Session exposes the live session for rendering.
func (c *Controller) Session() *Session {
	return c.session
}

// Start fetches questions for mode and starts a fresh session. It returns
// the countdown token to schedule ticks with.
func (c *Controller) Start(ctx context.Context, mode Mode) (uint64, error) {
	var questions []Question
	if c.source != nil {
		qs, err := c.source.QuizQuestions(ctx, mode)
		if err != nil {
			c.log.Warn("load questions failed, starting empty", "mode", mode, "error", err)
		} else {
			questions = qs
		}
	}
	if len(questions) == 0 {
		c.log.Warn("no questions available", "mode", mode)
	}

	token, err := c.session.Start(mode, questions)
	if err != nil {
		return 0, err
	}
	c.log.Debug("quiz started", "mode", mode, "questions", len(questions))
	return token, nil
}

// Tick forwards a countdown tick and records the result if it ended the run.
func (c *Controller) Tick(ctx context.Context, token uint64) Outcome {
	return c.record(ctx, c.session.Tick(token))
}

// Answer submits a response and records the result if it ended the run.
func (c *Controller) Answer(ctx context.Context, r Response) (Outcome, error) {
	out, err := c.session.Answer(r)
	if err != nil {
		return out, err
	}
	return c.record(ctx, out), nil
}

// Next advances past the current question.
func (c *Controller) Next(ctx context.Context) Outcome {
	return c.record(ctx, c.session.Next())
}

func (c *Controller) ShowHistory()    { c.session.ShowHistory() }
func (c *Controller) BackToOverview() { c.session.BackToOverview() }

// record persists a finished run. A limited bonus already claimed for its
// period is dropped from the outcome.
func (c *Controller) record(ctx context.Context, out Outcome) Outcome {
	if !out.Finished {
		return out
	}
	if out.Result != nil {
		c.log.Info("quiz finished",
			"mode", out.Result.Mode,
			"score", out.Result.Score,
			"total", out.Result.Total,
			"best_streak", out.Result.BestStreak,
		)
	}
	if c.recorder == nil {
		return out
	}
	if out.Result != nil {
		if err := c.recorder.SaveQuizResult(ctx, *out.Result); err != nil {
			c.log.Warn("save quiz result failed", "error", err)
		}
	}
	if out.BonusXP > 0 && !c.claim(ctx, out.Result) {
		out.BonusXP = 0
	}
	if out.BonusXP > 0 {
		if err := c.recorder.AddBonusXP(ctx, out.BonusXP); err != nil {
			c.log.Warn("save bonus xp failed", "amount", out.BonusXP, "error", err)
		}
	}
	return out
}

// claim reports whether the bonus for r may be awarded. A claim that cannot
// be stored is refused.
func (c *Controller) claim(ctx context.Context, r *Result) bool {
	if r == nil {
		return true
	}
	cfg, _ := LookupMode(r.Mode)
	key := cfg.Bonus.ClaimKey(r.Mode, r.Timestamp)
	if key == "" {
		return true
	}
	ok, err := c.recorder.ClaimBonus(ctx, key)
	if err != nil {
		c.log.Warn("claim bonus failed", "key", key, "error", err)
		return false
	}
	if !ok {
		c.log.Debug("bonus already claimed", "key", key)
	}
	return ok
}
