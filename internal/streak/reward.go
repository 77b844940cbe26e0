package streak

import (
	"slices"
	"time"
)

const (
	// BaseDailyReward is the login bonus before the streak multiplier.
	BaseDailyReward = 10

	// MaxDailyStreakBonus caps the streak part of the login bonus.
	MaxDailyStreakBonus = 20

	// MilestoneMultiplier converts a milestone day count into XP.
	MilestoneMultiplier = 5
)

// Milestones are the streak lengths that grant a one-time bonus.
var Milestones = []int{3, 7, 14, 30, 50, 100}

// DailyReward returns the login bonus for today, or 0 when it was already
// claimed. It does not mark the day; see ClaimDailyReward.
func DailyReward(d Data, today time.Time) int {
	if slices.Contains(d.DailyRewardsClaimed, DayKey(today)) {
		return 0
	}
	return BaseDailyReward + min(d.CurrentStreak*2, MaxDailyStreakBonus)
}

// ClaimDailyReward returns today's login bonus and marks the day claimed.
func ClaimDailyReward(d *Data, today time.Time) int {
	reward := DailyReward(*d, today)
	if reward > 0 {
		d.DailyRewardsClaimed = append(d.DailyRewardsClaimed, DayKey(today))
	}
	return reward
}

// MilestoneBonus awards every unclaimed milestone at or below currentStreak
// and marks each one claimed. Several milestones can be crossed in one call.
func MilestoneBonus(d *Data, currentStreak int) int {
	bonus := 0
	for _, m := range Milestones {
		if m > currentStreak || slices.Contains(d.StreakMilestones, m) {
			continue
		}
		bonus += m * MilestoneMultiplier
		d.StreakMilestones = append(d.StreakMilestones, m)
	}
	return bonus
}

// NextMilestone returns the first milestone above current, or 0 past the last.
func NextMilestone(current int) int {
	for _, m := range Milestones {
		if m > current {
			return m
		}
	}
	return 0
}
