package onboarding

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/notify"
	"github.com/sjostromVilgot/Facta-sub000/internal/router"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
	"github.com/sjostromVilgot/Facta-sub000/internal/screen/screentest"
)

// stubScreen stands in for the home screen.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestOnboarding(t *testing.T) (*OnboardingScreen, *screen.Deps, *int) {
	t.Helper()
	deps := screentest.Deps(t, nil)
	deps.Scheduler = notify.NewScheduler(notify.LogNotifier{}, nil, time.UTC)
	calls := 0
	o := New(deps, func() screen.Screen {
		calls++
		return &stubScreen{}
	})
	return o, deps, &calls
}

var (
	enter = screentest.Special(tea.KeyEnter)
	space = screentest.Special(tea.KeySpace)
	down  = screentest.Special(tea.KeyDown)
)

func TestOnboarding_FullFlow(t *testing.T) {
	o, deps, calls := newTestOnboarding(t)

	o.Update(enter)
	if o.step != stepName {
		t.Fatalf("step = %v, want name", o.step)
	}

	o.Update(enter)
	if o.step != stepName || o.errMsg == "" {
		t.Fatal("an empty name should be rejected")
	}

	screentest.Type(o, "Ada")
	o.Update(enter)
	if o.step != stepInterests {
		t.Fatalf("step = %v, want interests", o.step)
	}

	// Pick the first and third categories.
	o.Update(space)
	o.Update(down)
	o.Update(down)
	o.Update(space)
	o.Update(enter)
	if o.step != stepReminders {
		t.Fatalf("step = %v, want reminders", o.step)
	}

	// Daily is on by default; turn quiz reminders on too.
	o.Update(down)
	o.Update(space)
	_, cmd := o.Update(enter)
	if cmd == nil {
		t.Fatal("finishing should save")
	}
	_, cmd = o.Update(cmd())
	if cmd == nil {
		t.Fatal("a successful save should transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *calls != 1 {
		t.Errorf("next called %d times, want 1", *calls)
	}

	got := deps.Progress.LoadUserSettings(context.Background())
	cats := deps.Content.Categories()
	if got.Username != "Ada" || !got.OnboardingComplete {
		t.Errorf("settings = %+v", got)
	}
	if len(got.Interests) != 2 || got.Interests[0] != cats[0] || got.Interests[1] != cats[2] {
		t.Errorf("Interests = %v, want [%s %s]", got.Interests, cats[0], cats[2])
	}
	if !got.JoinDate.Equal(screentest.Now) {
		t.Errorf("JoinDate = %v, want %v", got.JoinDate, screentest.Now)
	}
	if !got.NotificationsEnabled || !got.QuizRemindersEnabled {
		t.Errorf("reminders = %v/%v, want both on", got.NotificationsEnabled, got.QuizRemindersEnabled)
	}
	if at, ok := deps.Scheduler.Scheduled(notify.KindQuiz); !ok || at != "19:00" {
		t.Errorf("Scheduled(quiz) = %q, %v; want 19:00", at, ok)
	}
}

func TestOnboarding_EscStepsBack(t *testing.T) {
	o, _, _ := newTestOnboarding(t)
	o.Update(enter)
	screentest.Type(o, "Bo")
	o.Update(enter)

	o.Update(screentest.Special(tea.KeyEscape))
	if o.step != stepName {
		t.Fatalf("step = %v, want name", o.step)
	}
	if o.name.Value() != "Bo" {
		t.Errorf("name = %q, want it kept", o.name.Value())
	}

	o.Update(screentest.Special(tea.KeyEscape))
	o.Update(screentest.Special(tea.KeyEscape))
	if o.step != stepWelcome {
		t.Errorf("step = %v, want welcome", o.step)
	}
}

func TestOnboarding_WelcomeAnimates(t *testing.T) {
	o, _, _ := newTestOnboarding(t)
	first := o.View(100, 30)
	if !strings.Contains(first, "One surprising fact a day") {
		t.Fatalf("welcome view:\n%s", first)
	}

	_, cmd := o.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("welcome should keep ticking")
	}
	if o.View(100, 30) == first {
		t.Error("sparkles should change between ticks")
	}

	o.Update(enter)
	if _, cmd := o.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("ticking should stop after the welcome step")
	}
}
