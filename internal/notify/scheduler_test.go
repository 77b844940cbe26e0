package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sjostromVilgot/Facta-sub000/internal/store"
)

type recorder struct {
	mu   sync.Mutex
	got  []Reminder
	fail error
}

func (r *recorder) Notify(_ context.Context, rem Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, rem)
	return r.fail
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"09:00", 9, 0, false},
		{"19:45", 19, 45, false},
		{"00:00", 0, 0, false},
		{"24:00", 0, 0, true},
		{"9am", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		h, m, err := ParseTime(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTime) {
				t.Errorf("ParseTime(%q) error = %v, want ErrInvalidTime", tt.in, err)
			}
			continue
		}
		if err != nil || h != tt.hour || m != tt.minute {
			t.Errorf("ParseTime(%q) = %d, %d, %v; want %d, %d, nil", tt.in, h, m, err, tt.hour, tt.minute)
		}
	}
}

func TestScheduleAndNext(t *testing.T) {
	s := NewScheduler(&recorder{}, nil, time.UTC)
	defer s.Stop()

	if err := s.ScheduleDailyReminder("09:30"); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	from := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	next, ok := s.Next(KindDaily, from)
	if !ok {
		t.Fatal("daily reminder not scheduled")
	}
	want := time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}

	if _, ok := s.Next(KindQuiz, from); ok {
		t.Error("quiz reminder unexpectedly scheduled")
	}
}

func TestRescheduleReplaces(t *testing.T) {
	s := NewScheduler(&recorder{}, nil, time.UTC)
	defer s.Stop()

	s.ScheduleQuizReminder("19:00")
	s.ScheduleQuizReminder("20:15")

	if at, _ := s.Scheduled(KindQuiz); at != "20:15" {
		t.Errorf("Scheduled = %q, want 20:15", at)
	}
	if n := len(s.cron.Entries()); n != 1 {
		t.Errorf("cron entries = %d, want 1", n)
	}
}

func TestInvalidTimeKeepsPrevious(t *testing.T) {
	s := NewScheduler(&recorder{}, nil, time.UTC)
	defer s.Stop()

	s.ScheduleDailyReminder("08:00")
	if err := s.ScheduleDailyReminder("late"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("error = %v, want ErrInvalidTime", err)
	}
	if at, ok := s.Scheduled(KindDaily); !ok || at != "08:00" {
		t.Errorf("Scheduled = %q, %v; want 08:00, true", at, ok)
	}
}

func TestCancel(t *testing.T) {
	s := NewScheduler(&recorder{}, nil, time.UTC)
	defer s.Stop()

	s.CancelDailyReminder() // no-op
	s.ScheduleDailyReminder("09:00")
	s.CancelDailyReminder()

	if _, ok := s.Scheduled(KindDaily); ok {
		t.Error("daily reminder still scheduled after cancel")
	}
	if n := len(s.cron.Entries()); n != 0 {
		t.Errorf("cron entries = %d, want 0", n)
	}
}

func TestFireDeliversReminder(t *testing.T) {
	rec := &recorder{fail: errors.New("no terminal")}
	s := NewScheduler(rec, nil, time.UTC)
	defer s.Stop()

	s.ScheduleQuizReminder("19:00")
	entries := s.cron.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	entries[0].Job.Run()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.got) != 1 || rec.got[0].Kind != KindQuiz || rec.got[0].At != "19:00" {
		t.Errorf("delivered = %+v", rec.got)
	}
}

func TestApply(t *testing.T) {
	s := NewScheduler(&recorder{}, nil, time.UTC)
	defer s.Stop()

	settings := store.DefaultSettings()
	settings.NotificationsEnabled = true
	settings.DailyReminderTime = "07:15"
	if err := s.Apply(settings); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if at, ok := s.Scheduled(KindDaily); !ok || at != "07:15" {
		t.Errorf("daily = %q, %v; want 07:15, true", at, ok)
	}
	if _, ok := s.Scheduled(KindQuiz); ok {
		t.Error("quiz reminder scheduled while disabled")
	}

	settings.NotificationsEnabled = false
	settings.QuizRemindersEnabled = true
	settings.QuizReminderTime = "bad"
	err := s.Apply(settings)
	if !errors.Is(err, ErrInvalidTime) {
		t.Errorf("error = %v, want ErrInvalidTime", err)
	}
	if _, ok := s.Scheduled(KindDaily); ok {
		t.Error("daily reminder kept after disabling")
	}
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &WriterNotifier{W: &buf}
	if err := n.Notify(context.Background(), Reminder{Kind: KindDaily, At: "09:00", Message: "hello"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "[09:00] hello") {
		t.Errorf("output = %q", got)
	}
}

func TestLogNotifierNilLogger(t *testing.T) {
	if err := (LogNotifier{}).Notify(context.Background(), Reminder{Kind: KindQuiz}); err != nil {
		t.Errorf("Notify = %v, want nil", err)
	}
}
