package quiz

import (
	"fmt"
	"slices"
	"time"
)

// Mode selects how a quiz is played.
type Mode string

const (
	ModeRecap     Mode = "recap"
	ModeTrueFalse Mode = "true_false"
	ModeBlitz     Mode = "blitz"
	ModeChallenge Mode = "challenge"
	ModeImage     Mode = "image"
	ModeFillBlank Mode = "fill_blank"
	ModeDaily     Mode = "daily_challenge"
	ModeWeekly    Mode = "weekly_challenge"
)

// Bonus is the extra XP a mode grants on completion. With a Period set it
// is granted once per calendar day or ISO week.
type Bonus struct {
	Flat    int
	Perfect int
	Period  Period
}

// Period limits how often a bonus can be claimed.
type Period int

const (
	EveryRun Period = iota
	Daily
	Weekly
)

// ModeConfig describes the shape and timing of a mode.
type ModeConfig struct {
	Mode        Mode
	Title       string
	Description string
	Icon        string

	// Kinds are the question kinds drawn for this mode.
	Kinds []Kind

	// QuestionCount is the number of questions requested. For blitz it is
	// the pool size; the clock ends the run.
	QuestionCount int

	// TimerSeconds is the countdown per question, or for the whole session
	// when SessionClock is set.
	TimerSeconds int
	SessionClock bool

	// TwoPlayer runs the question set twice, once per local player.
	TwoPlayer bool

	Bonus Bonus
}

const (
	defaultTimerSeconds   = 15
	trueFalseTimerSeconds = 12
	blitzSessionSeconds   = 60
)

var modeCatalog = []ModeConfig{
	{
		Mode:          ModeRecap,
		Title:         "Recap",
		Description:   "Five multiple-choice questions on recent facts",
		Icon:          "🧠",
		Kinds:         []Kind{KindMultipleChoice},
		QuestionCount: 5,
		TimerSeconds:  defaultTimerSeconds,
	},
	{
		Mode:          ModeTrueFalse,
		Title:         "True or False",
		Description:   "Ten quick true/false calls",
		Icon:          "✅",
		Kinds:         []Kind{KindTrueFalse},
		QuestionCount: 10,
		TimerSeconds:  trueFalseTimerSeconds,
	},
	{
		Mode:          ModeBlitz,
		Title:         "Blitz",
		Description:   "Answer as many as you can in 60 seconds",
		Icon:          "⚡",
		Kinds:         []Kind{KindMultipleChoice, KindTrueFalse},
		QuestionCount: 40,
		TimerSeconds:  blitzSessionSeconds,
		SessionClock:  true,
	},
	{
		Mode:          ModeChallenge,
		Title:         "Challenge a Friend",
		Description:   "Two players, same questions, one screen",
		Icon:          "🤝",
		Kinds:         []Kind{KindMultipleChoice},
		QuestionCount: 5,
		TimerSeconds:  defaultTimerSeconds,
		TwoPlayer:     true,
	},
	{
		Mode:          ModeImage,
		Title:         "Picture This",
		Description:   "Pick the right picture",
		Icon:          "🖼",
		Kinds:         []Kind{KindImageChoice},
		QuestionCount: 5,
		TimerSeconds:  defaultTimerSeconds,
	},
	{
		Mode:          ModeFillBlank,
		Title:         "Fill the Blank",
		Description:   "Type the missing word",
		Icon:          "✏️",
		Kinds:         []Kind{KindFillBlank},
		QuestionCount: 5,
		TimerSeconds:  defaultTimerSeconds,
	},
	{
		Mode:          ModeDaily,
		Title:         "Daily Challenge",
		Description:   "Today's five, the same for everyone",
		Icon:          "📅",
		Kinds:         []Kind{KindMultipleChoice, KindTrueFalse},
		QuestionCount: 5,
		TimerSeconds:  defaultTimerSeconds,
		Bonus:         Bonus{Flat: 25, Perfect: 50, Period: Daily},
	},
	{
		Mode:          ModeWeekly,
		Title:         "Weekly Challenge",
		Description:   "Ten questions that change every week",
		Icon:          "🏆",
		Kinds:         []Kind{KindMultipleChoice, KindTrueFalse, KindFillBlank},
		QuestionCount: 10,
		TimerSeconds:  defaultTimerSeconds,
		Bonus:         Bonus{Flat: 50, Perfect: 100, Period: Weekly},
	},
}

// Modes returns every mode in menu order.
func Modes() []ModeConfig {
	return slices.Clone(modeCatalog)
}

// LookupMode returns the configuration for m.
func LookupMode(m Mode) (ModeConfig, bool) {
	for _, c := range modeCatalog {
		if c.Mode == m {
			return c, true
		}
	}
	return ModeConfig{}, false
}

// Award returns the bonus XP earned by a finished result.
func (b Bonus) Award(r Result) int {
	if b.Flat == 0 && b.Perfect == 0 {
		return 0
	}
	xp := b.Flat
	if r.Perfect() {
		xp += b.Perfect
	}
	return xp
}

// ClaimKey names the period a bonus earned at t belongs to, in t's location.
// It is empty when the bonus is not limited.
func (b Bonus) ClaimKey(m Mode, t time.Time) string {
	switch b.Period {
	case Daily:
		return fmt.Sprintf("%s@%s", m, t.Format(time.DateOnly))
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%s@%d-W%02d", m, year, week)
	}
	return ""
}
