package discover

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen/screentest"
)

// load runs Init and the read mark it triggers.
func load(t *testing.T, deps *screen.Deps) *DiscoverScreen {
	t.Helper()
	s := New(deps)
	_, cmd := s.Update(s.Init()())
	require.True(t, s.loaded)
	require.NotEmpty(t, s.facts)
	require.NotNil(t, cmd, "first fact should be marked read")
	s.Update(cmd())
	return s
}

// press sends key and runs whatever command it returns.
func press(s *DiscoverScreen, k tea.KeyPressMsg) {
	_, cmd := s.Update(k)
	if cmd != nil {
		s.Update(cmd())
	}
}

func TestDiscover_MarksFactsRead(t *testing.T) {
	deps := screentest.Deps(t, nil)
	s := load(t, deps)
	ctx := context.Background()

	assert.Equal(t, []string{s.facts[0].ID}, deps.Progress.LoadReadFacts(ctx))

	press(s, screentest.Special(tea.KeyRight))
	press(s, screentest.Special(tea.KeyLeft))
	press(s, screentest.Special(tea.KeyRight))

	assert.Equal(t, []string{s.facts[0].ID, s.facts[1].ID}, deps.Progress.LoadReadFacts(ctx))
	assert.Equal(t, 1, s.index)
}

func TestDiscover_ToggleFavorite(t *testing.T) {
	deps := screentest.Deps(t, nil)
	s := load(t, deps)
	ctx := context.Background()
	id := s.facts[0].ID

	press(s, screentest.Key('f'))
	assert.True(t, s.favorites[id])
	assert.True(t, deps.Progress.IsFavorite(ctx, id))

	press(s, screentest.Key('f'))
	assert.False(t, s.favorites[id])
	assert.False(t, deps.Progress.IsFavorite(ctx, id))
}

func TestDiscover_CategoryFilter(t *testing.T) {
	s := load(t, screentest.Deps(t, nil))
	total := len(s.all)

	press(s, screentest.Key('c'))
	require.Equal(t, s.categories[0], s.category)
	assert.Less(t, len(s.facts), total)
	for _, f := range s.facts {
		assert.Equal(t, s.category, f.Category)
	}

	for range s.categories {
		press(s, screentest.Key('c'))
	}
	assert.Empty(t, s.category, "cycling past the last category shows everything")
	assert.Len(t, s.facts, total)
}

func TestDiscover_InterestsFirst(t *testing.T) {
	deps := screentest.Deps(t, nil)
	ctx := context.Background()
	settings := deps.Progress.LoadUserSettings(ctx)
	settings.Interests = []string{"Space"}
	require.NoError(t, deps.Progress.SaveUserSettings(ctx, settings))

	s := load(t, deps)

	spaceCount := 0
	for _, f := range s.all {
		if f.Category == "Space" {
			spaceCount++
		}
	}
	require.Positive(t, spaceCount)
	for i := 0; i < spaceCount; i++ {
		assert.Equal(t, "Space", s.facts[i].Category, "fact %d", i)
	}
}

func TestDiscover_View(t *testing.T) {
	s := load(t, screentest.Deps(t, nil))
	view := s.View(100, 40)
	assert.Contains(t, view, "All categories")
	assert.Contains(t, view, "NEW +10 XP")
}
