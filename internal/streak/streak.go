// Package streak tracks consecutive days of activity and the XP rewards tied
// to them. Everything here operates on values; persistence is the caller's job.
package streak

import (
	"slices"
	"time"
)

// dayKeyLayout formats calendar days in the claimed-rewards set.
const dayKeyLayout = "2006-01-02"

// Data is the persisted streak record.
type Data struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	// LastActiveDate is zero before the first recorded activity.
	LastActiveDate  time.Time  `json:"last_active_date"`
	StreakStartDate *time.Time `json:"streak_start_date,omitempty"`

	DailyRewardsClaimed []string `json:"daily_rewards_claimed"`
	StreakMilestones    []int    `json:"streak_milestones"`
}

// Update records activity at now and returns the updated record.
//
// Same-day calls leave the counters alone. A gap of exactly one calendar day
// extends the streak; any other gap, including a negative one caused by
// clock skew, restarts it at 1. LastActiveDate never moves backwards.
func Update(d Data, now time.Time) Data {
	out := d.clone()
	today := StartOfDay(now)

	if d.LastActiveDate.IsZero() {
		out.restart(today)
	} else {
		switch gap := DaysBetween(d.LastActiveDate, now); {
		case gap == 0:
		case gap == 1:
			out.CurrentStreak++
			out.LongestStreak = max(out.LongestStreak, out.CurrentStreak)
			if out.StreakStartDate == nil {
				prev := StartOfDay(d.LastActiveDate.In(now.Location()))
				out.StreakStartDate = &prev
			}
		default:
			out.restart(today)
		}
	}

	if now.After(out.LastActiveDate) {
		out.LastActiveDate = now
	}
	return out
}

func (d *Data) restart(today time.Time) {
	d.CurrentStreak = 1
	d.LongestStreak = max(d.LongestStreak, 1)
	d.StreakStartDate = &today
}

func (d Data) clone() Data {
	out := d
	out.DailyRewardsClaimed = slices.Clone(d.DailyRewardsClaimed)
	out.StreakMilestones = slices.Clone(d.StreakMilestones)
	if d.StreakStartDate != nil {
		start := *d.StreakStartDate
		out.StreakStartDate = &start
	}
	return out
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b, measured in
// b's location. DST transitions do not skew the count.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// DayKey returns the claimed-set key for the calendar day containing t.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}
