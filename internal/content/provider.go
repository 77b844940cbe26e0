package content

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
)

var (
	//go:embed data/facts.json
	builtinFacts []byte

	//go:embed data/questions.json
	builtinQuestions []byte
)

// Options configures a Provider.
type Options struct {
	// PackDir holds additional *.json packs. Empty means built-in content only.
	PackDir string

	Logger *logger.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Provider serves facts and quiz questions from the built-in packs plus any
// packs found in PackDir. It is read-only after construction.
type Provider struct {
	facts     []Fact
	questions []quiz.Question
	factIndex map[string]int
	now       func() time.Time
	log       *logger.Logger
}

// NewProvider loads the built-in packs and then every pack in opts.PackDir.
// Broken or incompatible packs in PackDir are skipped with a warning; IDs
// already loaded keep their first definition.
func NewProvider(opts Options) (*Provider, error) {
	p := &Provider{
		factIndex: make(map[string]int),
		now:       opts.Now,
		log:       logger.OrNop(opts.Logger).With("component", "content"),
	}
	if p.now == nil {
		p.now = time.Now
	}

	for _, raw := range [][]byte{builtinFacts, builtinQuestions} {
		pack, err := ParsePack(raw)
		if err != nil {
			return nil, fmt.Errorf("built-in pack: %w", err)
		}
		p.add(pack)
	}

	if opts.PackDir != "" {
		if err := p.loadDir(opts.PackDir); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Provider) loadDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("list packs: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			p.log.Warn("skipping unreadable pack", "path", path, "error", err)
			continue
		}
		pack, err := ParsePack(raw)
		if err != nil {
			p.log.Warn("skipping invalid pack", "path", path, "error", err,
				"incompatible", errors.Is(err, ErrIncompatiblePack))
			continue
		}
		p.add(pack)
		p.log.Debug("loaded pack", "path", path, "facts", len(pack.Facts), "questions", len(pack.Questions))
	}
	return nil
}

func (p *Provider) add(pack *Pack) {
	for _, f := range pack.Facts {
		if _, dup := p.factIndex[f.ID]; dup {
			continue
		}
		p.factIndex[f.ID] = len(p.facts)
		p.facts = append(p.facts, f)
	}
	for _, q := range pack.Questions {
		if slices.ContainsFunc(p.questions, func(x quiz.Question) bool { return x.ID == q.ID }) {
			continue
		}
		p.questions = append(p.questions, q)
	}
}

// DailyFact returns the fact of the day for now's calendar date. Every call
// on the same date returns the same fact.
func (p *Provider) DailyFact(now time.Time) Fact {
	if len(p.facts) == 0 {
		return Fact{}
	}
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	n := int64(len(p.facts))
	// Dates before 1970 give a negative day number.
	return p.facts[((day%n)+n)%n]
}

// DiscoveryFacts returns every fact in a fresh random order.
func (p *Provider) DiscoveryFacts() []Fact {
	out := slices.Clone(p.facts)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Facts returns every fact in load order.
func (p *Provider) Facts() []Fact {
	return slices.Clone(p.facts)
}

// FactByID looks up a fact.
func (p *Provider) FactByID(id string) (Fact, bool) {
	i, ok := p.factIndex[id]
	if !ok {
		return Fact{}, false
	}
	return p.facts[i], true
}

// Categories returns the distinct fact categories, sorted.
func (p *Provider) Categories() []string {
	var cats []string
	for _, f := range p.facts {
		if !slices.Contains(cats, f.Category) {
			cats = append(cats, f.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// QuizQuestions returns a question set shaped for mode: only the mode's
// kinds, at most its QuestionCount. Daily and weekly sets are stable for
// the whole day or ISO week.
func (p *Provider) QuizQuestions(ctx context.Context, mode quiz.Mode) ([]quiz.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, ok := quiz.LookupMode(mode)
	if !ok {
		return nil, fmt.Errorf("mode %q: %w", mode, quiz.ErrUnknownMode)
	}

	var pool []quiz.Question
	for _, q := range p.questions {
		if slices.Contains(cfg.Kinds, q.Kind) {
			pool = append(pool, q)
		}
	}

	rng := p.rngFor(mode)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if len(pool) > cfg.QuestionCount {
		pool = pool[:cfg.QuestionCount]
	}
	return pool, nil
}

func (p *Provider) rngFor(mode quiz.Mode) *rand.Rand {
	now := p.now()
	var seed string
	switch mode {
	case quiz.ModeDaily:
		seed = "daily:" + now.Format("2006-01-02")
	case quiz.ModeWeekly:
		year, week := now.ISOWeek()
		seed = fmt.Sprintf("weekly:%d-W%02d", year, week)
	default:
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	s := h.Sum64()
	return rand.New(rand.NewPCG(s, s>>1|1))
}
