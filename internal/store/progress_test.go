package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/streak"
)

// failingKV errors on every call.
type failingKV struct{}

var errBackend = errors.New("backend down")

func (failingKV) Get(context.Context, string) ([]byte, error) { return nil, errBackend }
func (failingKV) Put(context.Context, string, []byte) error { return errBackend }
func (failingKV) Delete(context.Context, string) error { return errBackend }
func (failingKV) Keys(context.Context) ([]string, error) { return nil, errBackend }

func TestProgressDefaults(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(NewMemoryKV(), nil)

	assert.Empty(t, p.LoadFavorites(ctx))
	assert.Empty(t, p.LoadReadFacts(ctx))
	assert.Empty(t, p.LoadQuizHistory(ctx))
	assert.Equal(t, streak.Data{}, p.LoadStreakData(ctx))
	assert.Equal(t, DefaultSettings(), p.LoadUserSettings(ctx))
	assert.Zero(t, p.LoadBonusXP(ctx))
	assert.Equal(t, 1, p.LoadLastLevel(ctx))
}

func TestProgressCorruptRecordFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, KeyQuizHistory, []byte("{not json")))
	require.NoError(t, kv.Put(ctx, KeySettings, []byte(`"wrong shape"`)))

	p := NewProgress(kv, nil)
	assert.Empty(t, p.LoadQuizHistory(ctx))
	assert.Equal(t, DefaultSettings(), p.LoadUserSettings(ctx))
}

func TestProgressBackendFailure(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(failingKV{}, nil)

	assert.Empty(t, p.LoadFavorites(ctx))
	assert.Zero(t, p.LoadBonusXP(ctx))
	assert.ErrorIs(t, p.SaveQuizResult(ctx, quiz.Result{ID: "x"}), errBackend)
	assert.ErrorIs(t, p.Reset(ctx), errBackend)
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(NewMemoryKV(), nil)

	a := content.Fact{ID: "f1", Title: "Octopus hearts"}
	b := content.Fact{ID: "f2", Title: "Honey never spoils"}

	require.NoError(t, p.SaveFavorite(ctx, a))
	require.NoError(t, p.SaveFavorite(ctx, b))
	require.NoError(t, p.SaveFavorite(ctx, a))

	favs := p.LoadFavorites(ctx)
	require.Len(t, favs, 2)
	assert.Equal(t, "f2", favs[0].ID, "newest favourite first")
	assert.True(t, p.IsFavorite(ctx, "f1"))

	require.NoError(t, p.RemoveFavorite(ctx, "f1"))
	assert.False(t, p.IsFavorite(ctx, "f1"))
	assert.Len(t, p.LoadFavorites(ctx), 1)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(NewMemoryKV(), nil)

	for _, id := range []string{"f1", "f2", "f1"} {
		require.NoError(t, p.MarkRead(ctx, id))
	}
	assert.Equal(t, []string{"f1", "f2"}, p.LoadReadFacts(ctx))
}

func TestQuizHistoryAppends(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(NewMemoryKV(), nil)
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, p.SaveQuizResult(ctx, quiz.Result{ID: "a", Timestamp: ts, Mode: quiz.ModeRecap, Score: 3, Total: 5}))
	require.NoError(t, p.SaveQuizResult(ctx, quiz.Result{ID: "b", Timestamp: ts.Add(time.Hour), Mode: quiz.ModeBlitz, Score: 7, Total: 9, BestStreak: 4}))

	history := p.LoadQuizHistory(ctx)
	require.Len(t, history, 2)
	assert.Equal(t, "a", history[0].ID)
	assert.Equal(t, 4, history[1].BestStreak)
	assert.True(t, history[0].Timestamp.Equal(ts))
}

func TestStreakDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(openTestStore(t).KV(), nil)

	now := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	d := streak.Update(streak.Data{}, now)
	require.NoError(t, p.SaveStreakData(ctx, d))

	got := p.LoadStreakData(ctx)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.True(t, got.LastActiveDate.Equal(now))
	require.NotNil(t, got.StreakStartDate)
}

func TestBonusXPAccumulates(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(NewMemoryKV(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.AddBonusXP(ctx, 5))
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, p.LoadBonusXP(ctx))
	require.NoError(t, p.AddBonusXP(ctx, 0))
	assert.Equal(t, 100, p.LoadBonusXP(ctx))
}

func TestClaimBonusOnce(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(NewMemoryKV(), nil)

	ok, err := p.ClaimBonus(ctx, "daily_challenge@2024-06-01")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.ClaimBonus(ctx, "daily_challenge@2024-06-01")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.ClaimBonus(ctx, "daily_challenge@2024-06-02")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = NewProgress(failingKV{}, nil).ClaimBonus(ctx, "weekly_challenge@2024-W22")
	assert.ErrorIs(t, err, errBackend)
}

func TestClaimBonusKeepsRecentClaims(t *testing.T) {
	ctx := context.Background()
	p := NewProgress(NewMemoryKV(), nil)
	for i := 0; i < maxBonusClaims+10; i++ {
		ok, err := p.ClaimBonus(ctx, fmt.Sprintf("k%d", i))
		require.NoError(t, err)
		require.True(t, ok)
	}

	claims := load(ctx, p, KeyBonusClaims, []string{})
	assert.Len(t, claims, maxBonusClaims)
	ok, err := p.ClaimBonus(ctx, fmt.Sprintf("k%d", maxBonusClaims+9))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSettingsMissingFieldKeepsDefault(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, KeySettings,
		[]byte(`{"username":"ada","onboarding_complete":true,"daily_reminder_time":"08:30"}`)))

	got := NewProgress(kv, nil).LoadUserSettings(ctx)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, "08:30", got.DailyReminderTime)
	assert.Equal(t, "19:00", got.QuizReminderTime)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	p := NewProgress(kv, nil)

	require.NoError(t, p.MarkRead(ctx, "f1"))
	require.NoError(t, p.AddBonusXP(ctx, 25))
	require.NoError(t, p.SaveLastLevel(ctx, 3))
	_, err := p.ClaimBonus(ctx, "daily_challenge@2024-06-01")
	require.NoError(t, err)
	require.NoError(t, p.SaveUserSettings(ctx, UserSettings{Username: "ada", OnboardingComplete: true}))

	require.NoError(t, p.Reset(ctx))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	ok, err := p.ClaimBonus(ctx, "daily_challenge@2024-06-01")
	require.NoError(t, err)
	assert.True(t, ok, "reset clears claims")
	assert.False(t, p.LoadUserSettings(ctx).OnboardingComplete)
}
