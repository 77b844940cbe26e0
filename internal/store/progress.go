package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/streak"
)

// Record keys.
const (
	KeyFavorites   = "favorites"
	KeyReadFacts   = "read_facts"
	KeyQuizHistory = "quiz_history"
	KeyStreakData  = "streak_data"
	KeySettings    = "user_settings"
	KeyBonusXP     = "bonus_xp"
	KeyLastLevel   = "last_level"
	KeyBonusClaims = "bonus_claims"
)

// maxBonusClaims bounds the claim record. Only the current day and week are
// ever checked.
const maxBonusClaims = 32

var allKeys = []string{
	KeyFavorites, KeyReadFacts, KeyQuizHistory, KeyStreakData,
	KeySettings, KeyBonusXP, KeyLastLevel, KeyBonusClaims,
}

// Progress stores the player's records as JSON blobs in a KV.
//
// Loads never fail: a missing, unreadable or corrupt record yields its
// default and the problem is logged. Saves return errors so callers can log
// them, but nothing depends on their success. Read-modify-write cycles hold
// a mutex, so each record changes as one unit.
type Progress struct {
	kv  KV
	log *logger.Logger
	mu  sync.Mutex
}

// NewProgress wraps kv. log may be nil.
func NewProgress(kv KV, log *logger.Logger) *Progress {
	return &Progress{kv: kv, log: logger.OrNop(log).With("component", "progress")}
}

func load[T any](ctx context.Context, p *Progress, key string, def T) T {
	raw, err := p.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def
	}
	if err != nil {
		p.log.Warn("read record failed, using default", "key", key, "error", err)
		return def
	}

	// Fields missing from an older record keep their defaults.
	v := def
	if err := json.Unmarshal(raw, &v); err != nil {
		p.log.Warn("corrupt record, using default", "key", key, "error", err)
		return def
	}
	return v
}

func (p *Progress) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := p.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LoadFavorites returns favourited facts, most recent first.
func (p *Progress) LoadFavorites(ctx context.Context) []content.Fact {
	return load(ctx, p, KeyFavorites, []content.Fact{})
}

// SaveFavorite adds f to the favourites. Saving an existing favourite is a no-op.
func (p *Progress) SaveFavorite(ctx context.Context, f content.Fact) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	favs := p.LoadFavorites(ctx)
	if slices.ContainsFunc(favs, func(x content.Fact) bool { return x.ID == f.ID }) {
		return nil
	}
	return p.save(ctx, KeyFavorites, append([]content.Fact{f}, favs...))
}

// RemoveFavorite drops the fact with id from the favourites.
func (p *Progress) RemoveFavorite(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	favs := p.LoadFavorites(ctx)
	kept := slices.DeleteFunc(favs, func(x content.Fact) bool { return x.ID == id })
	return p.save(ctx, KeyFavorites, kept)
}

// IsFavorite reports whether the fact with id is favourited.
func (p *Progress) IsFavorite(ctx context.Context, id string) bool {
	return slices.ContainsFunc(p.LoadFavorites(ctx), func(x content.Fact) bool { return x.ID == id })
}

// LoadReadFacts returns the IDs of facts the player has read.
func (p *Progress) LoadReadFacts(ctx context.Context) []string {
	return load(ctx, p, KeyReadFacts, []string{})
}

// MarkRead records that the fact with id was read.
func (p *Progress) MarkRead(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	read := p.LoadReadFacts(ctx)
	if slices.Contains(read, id) {
		return nil
	}
	return p.save(ctx, KeyReadFacts, append(read, id))
}

// LoadQuizHistory returns finished quizzes, oldest first.
func (p *Progress) LoadQuizHistory(ctx context.Context) []quiz.Result {
	return load(ctx, p, KeyQuizHistory, []quiz.Result{})
}

// SaveQuizResult appends r to the history.
func (p *Progress) SaveQuizResult(ctx context.Context, r quiz.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	history := p.LoadQuizHistory(ctx)
	return p.save(ctx, KeyQuizHistory, append(history, r))
}

// LoadStreakData returns the streak record, or a zero record.
func (p *Progress) LoadStreakData(ctx context.Context) streak.Data {
	return load(ctx, p, KeyStreakData, streak.Data{})
}

// SaveStreakData replaces the streak record.
func (p *Progress) SaveStreakData(ctx context.Context, d streak.Data) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.save(ctx, KeyStreakData, d)
}

// LoadUserSettings returns the settings, or DefaultSettings.
func (p *Progress) LoadUserSettings(ctx context.Context) UserSettings {
	return load(ctx, p, KeySettings, DefaultSettings())
}

// SaveUserSettings replaces the settings.
func (p *Progress) SaveUserSettings(ctx context.Context, s UserSettings) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.save(ctx, KeySettings, s)
}

// LoadBonusXP returns XP earned outside the base formula (rewards, challenges).
func (p *Progress) LoadBonusXP(ctx context.Context) int {
	return load(ctx, p, KeyBonusXP, 0)
}

// AddBonusXP adds amount to the stored bonus XP.
func (p *Progress) AddBonusXP(ctx context.Context, amount int) error {
	if amount == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.save(ctx, KeyBonusXP, p.LoadBonusXP(ctx)+amount)
}

// ClaimBonus records key as claimed. It reports false when key was claimed
// before.
func (p *Progress) ClaimBonus(ctx context.Context, key string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	claims := load(ctx, p, KeyBonusClaims, []string{})
	if slices.Contains(claims, key) {
		return false, nil
	}
	claims = append(claims, key)
	if len(claims) > maxBonusClaims {
		claims = claims[len(claims)-maxBonusClaims:]
	}
	if err := p.save(ctx, KeyBonusClaims, claims); err != nil {
		return false, err
	}
	return true, nil
}

// LoadLastLevel returns the level seen on the previous profile load, or 1.
func (p *Progress) LoadLastLevel(ctx context.Context) int {
	return load(ctx, p, KeyLastLevel, 1)
}

func (p *Progress) SaveLastLevel(ctx context.Context, level int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.save(ctx, KeyLastLevel, level)
}

// Reset deletes every progress record.
func (p *Progress) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, k := range allKeys {
		if err := p.kv.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
