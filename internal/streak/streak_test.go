package streak

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestUpdate_FirstEverUse(t *testing.T) {
	now := day(2024, 3, 10, 9)
	got := Update(Data{}, now)

	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", got.LongestStreak)
	}
	if got.StreakStartDate == nil || !got.StreakStartDate.Equal(day(2024, 3, 10, 0)) {
		t.Errorf("StreakStartDate = %v, want start of 2024-03-10", got.StreakStartDate)
	}
	if !got.LastActiveDate.Equal(now) {
		t.Errorf("LastActiveDate = %v, want %v", got.LastActiveDate, now)
	}
}

func TestUpdate_ConsecutiveDay(t *testing.T) {
	prev := Data{CurrentStreak: 4, LongestStreak: 4, LastActiveDate: day(2024, 3, 10, 22)}
	got := Update(prev, day(2024, 3, 11, 7))

	if got.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", got.CurrentStreak)
	}
	if got.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5", got.LongestStreak)
	}
	if got.StreakStartDate == nil || !got.StreakStartDate.Equal(day(2024, 3, 10, 0)) {
		t.Errorf("StreakStartDate = %v, want previous active day", got.StreakStartDate)
	}
}

func TestUpdate_ConsecutiveDayKeepsStartDate(t *testing.T) {
	start := day(2024, 3, 1, 0)
	prev := Data{CurrentStreak: 2, LongestStreak: 9, LastActiveDate: day(2024, 3, 2, 8), StreakStartDate: &start}
	got := Update(prev, day(2024, 3, 3, 8))

	if got.CurrentStreak != 3 || got.LongestStreak != 9 {
		t.Errorf("streak = %d/%d, want 3/9", got.CurrentStreak, got.LongestStreak)
	}
	if !got.StreakStartDate.Equal(start) {
		t.Errorf("StreakStartDate = %v, want %v", got.StreakStartDate, start)
	}
}

func TestUpdate_GapResets(t *testing.T) {
	prev := Data{CurrentStreak: 6, LongestStreak: 8, LastActiveDate: day(2024, 3, 1, 12)}
	got := Update(prev, day(2024, 3, 5, 12))

	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 8 {
		t.Errorf("LongestStreak = %d, want 8", got.LongestStreak)
	}
	if !got.StreakStartDate.Equal(day(2024, 3, 5, 0)) {
		t.Errorf("StreakStartDate = %v, want today", got.StreakStartDate)
	}
}

func TestUpdate_ClockSkewResetsWithoutRewindingLastActive(t *testing.T) {
	last := day(2024, 3, 5, 12)
	prev := Data{CurrentStreak: 3, LongestStreak: 3, LastActiveDate: last}
	got := Update(prev, day(2024, 3, 3, 12))

	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if !got.LastActiveDate.Equal(last) {
		t.Errorf("LastActiveDate = %v, want unchanged %v", got.LastActiveDate, last)
	}
}

func TestUpdate_SameDayIdempotent(t *testing.T) {
	prev := Data{CurrentStreak: 2, LongestStreak: 5, LastActiveDate: day(2024, 3, 9, 8)}
	once := Update(prev, day(2024, 3, 10, 8))

	repeated := once
	for h := 9; h < 20; h++ {
		repeated = Update(repeated, day(2024, 3, 10, h))
	}

	if repeated.CurrentStreak != once.CurrentStreak || repeated.LongestStreak != once.LongestStreak {
		t.Errorf("after repeats = %d/%d, want %d/%d",
			repeated.CurrentStreak, repeated.LongestStreak, once.CurrentStreak, once.LongestStreak)
	}
}

func TestUpdate_CurrentNeverExceedsLongest(t *testing.T) {
	d := Data{}
	now := day(2024, 1, 1, 10)
	gaps := []int{1, 1, 1, 3, 1, 0, 1, -2, 1, 1, 1, 1, 5, 1}
	for i, g := range gaps {
		now = now.AddDate(0, 0, g)
		d = Update(d, now)
		if d.CurrentStreak > d.LongestStreak {
			t.Fatalf("step %d: current %d > longest %d", i, d.CurrentStreak, d.LongestStreak)
		}
	}
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	prev := Data{
		CurrentStreak:       1,
		LongestStreak:       1,
		LastActiveDate:      day(2024, 3, 9, 8),
		DailyRewardsClaimed: []string{"2024-03-09"},
	}
	got := Update(prev, day(2024, 3, 10, 8))
	got.DailyRewardsClaimed[0] = "changed"

	if prev.DailyRewardsClaimed[0] != "2024-03-09" {
		t.Error("Update shared the claimed slice with its input")
	}
	if prev.CurrentStreak != 1 {
		t.Errorf("input CurrentStreak = %d, want 1", prev.CurrentStreak)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{day(2024, 3, 10, 23), day(2024, 3, 11, 0), 1},
		{day(2024, 3, 10, 0), day(2024, 3, 10, 23), 0},
		{day(2024, 2, 28, 12), day(2024, 3, 1, 12), 2},
		{day(2024, 3, 10, 12), day(2024, 3, 8, 12), -2},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
