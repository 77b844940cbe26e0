// Package progression recomputes a player's stats, level and badges from
// the persisted progress records.
package progression

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/leveling"
	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
	"github.com/sjostromVilgot/Facta-sub000/internal/streak"
)

// XP weights.
const (
	XPPerFactRead  = 10
	XPPerQuiz      = 25
	XPPerStreakDay = 5
)

// ProgressStore is the slice of the progress store the aggregator reads
// and writes.
type ProgressStore interface {
	LoadReadFacts(ctx context.Context) []string
	LoadQuizHistory(ctx context.Context) []quiz.Result
	LoadFavorites(ctx context.Context) []content.Fact
	LoadUserSettings(ctx context.Context) store.UserSettings
	LoadStreakData(ctx context.Context) streak.Data
	SaveStreakData(ctx context.Context, d streak.Data) error
	LoadBonusXP(ctx context.Context) int
	AddBonusXP(ctx context.Context, amount int) error
	LoadLastLevel(ctx context.Context) int
	SaveLastLevel(ctx context.Context, level int) error
}

// UserStats is derived on every load and never stored.
type UserStats struct {
	StreakDays       int
	LongestStreak    int
	TotalFactsRead   int
	TotalQuizzes     int
	AvgQuizScore     int
	BestQuizStreak   int
	BadgesUnlocked   int
	FavoritesCount   int
	FavoriteCategory string
	JoinDate         time.Time

	TotalXP       int
	Level         int
	PreviousLevel int
	HasLeveledUp  bool
	XPProgress    int
	XPToNext      int
}

// Profile is everything the profile screen shows.
type Profile struct {
	Stats  UserStats
	Badges []Badge
	Streak streak.Data

	// Rewards claimed by this load. Both are zero on repeat loads the same day.
	DailyReward    int
	MilestoneBonus int
}

// Aggregator builds profiles. Loads are serialised so that reward claims and
// the bonus total they feed are read and written as one unit.
type Aggregator struct {
	mu    sync.Mutex
	store ProgressStore
	now   func() time.Time
	log   *logger.Logger
}

// NewAggregator creates an Aggregator. now defaults to time.Now.
func NewAggregator(s ProgressStore, log *logger.Logger, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{store: s, now: now, log: logger.OrNop(log).With("component", "progression")}
}

// Load records today's activity, claims any daily reward and newly crossed
// streak milestones, and recomputes the profile. Claimed rewards are added
// to the stored bonus XP, so totals stay stable across loads.
func (a *Aggregator) Load(ctx context.Context) Profile {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()

	read := a.store.LoadReadFacts(ctx)
	history := a.store.LoadQuizHistory(ctx)
	favorites := a.store.LoadFavorites(ctx)
	settings := a.store.LoadUserSettings(ctx)
	bonus := a.store.LoadBonusXP(ctx)
	previous := a.store.LoadLastLevel(ctx)

	data := streak.Update(a.store.LoadStreakData(ctx), now)
	daily := streak.ClaimDailyReward(&data, now)
	milestone := streak.MilestoneBonus(&data, data.CurrentStreak)

	if err := a.store.SaveStreakData(ctx, data); err != nil {
		a.log.Warn("save streak data failed", "error", err)
	}
	if claimed := daily + milestone; claimed > 0 {
		if err := a.store.AddBonusXP(ctx, claimed); err != nil {
			a.log.Warn("save bonus xp failed", "amount", claimed, "error", err)
		}
	}

	summary := quiz.Summarize(history)
	total := TotalXP(len(read), summary.Count, data.CurrentStreak, bonus+daily+milestone)
	level := leveling.Level(total)

	stats := UserStats{
		StreakDays:       data.CurrentStreak,
		LongestStreak:    data.LongestStreak,
		TotalFactsRead:   len(read),
		TotalQuizzes:     summary.Count,
		AvgQuizScore:     summary.AvgPercent,
		BestQuizStreak:   summary.BestStreak,
		FavoritesCount:   len(favorites),
		FavoriteCategory: FavoriteCategory(favorites),
		JoinDate:         settings.JoinDate,
		TotalXP:          total,
		Level:            level,
		PreviousLevel:    previous,
		HasLeveledUp:     level > previous,
		XPProgress:       leveling.XPProgress(total),
		XPToNext:         leveling.XPForNextLevel(total),
	}

	badges := EvaluateBadges(stats)
	for _, b := range badges {
		if b.Unlocked {
			stats.BadgesUnlocked++
		}
	}

	if level != previous {
		if err := a.store.SaveLastLevel(ctx, level); err != nil {
			a.log.Warn("save level failed", "error", err)
		}
	}
	if stats.HasLeveledUp {
		a.log.Info("level up", "from", previous, "to", level, "xp", total)
	}

	return Profile{
		Stats:          stats,
		Badges:         badges,
		Streak:         data,
		DailyReward:    daily,
		MilestoneBonus: milestone,
	}
}

// TotalXP applies the XP formula. bonus covers stored and freshly claimed rewards.
func TotalXP(factsRead, quizzes, currentStreak, bonus int) int {
	return factsRead*XPPerFactRead + quizzes*XPPerQuiz + currentStreak*XPPerStreakDay + bonus
}

// FavoriteCategory returns the most common category among favourites.
// Ties go to the alphabetically first category; no favourites yields "".
func FavoriteCategory(favorites []content.Fact) string {
	counts := make(map[string]int)
	for _, f := range favorites {
		if f.Category != "" {
			counts[f.Category]++
		}
	}

	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	best := ""
	for _, c := range cats {
		if best == "" || counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
