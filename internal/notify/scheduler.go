// Package notify schedules the daily fact and quiz reminders.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
)

// ErrInvalidTime is returned for reminder times that are not "HH:MM".
var ErrInvalidTime = errors.New("notify: invalid reminder time")

var messages = map[Kind]string{
	KindDaily: "Your fact of the day is ready 💡",
	KindQuiz:  "Time for a quick quiz. Keep your streak alive! 🧠",
}

type job struct {
	id       cron.EntryID
	at       string
	schedule cron.Schedule
}

// Scheduler runs reminders on a cron. Scheduling a kind replaces its
// previous schedule; cancelling an unscheduled kind is a no-op.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	jobs     map[Kind]job
	notifier Notifier
	log      *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a stopped scheduler. loc defaults to time.Local.
func NewScheduler(n Notifier, log *logger.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		jobs:     make(map[Kind]job),
		notifier: n,
		log:      logger.OrNop(log).With("component", "notify"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ParseTime splits "HH:MM" into hour and minute.
func ParseTime(hhmm string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", hhmm, ErrInvalidTime)
	}
	return t.Hour(), t.Minute(), nil
}

func (s *Scheduler) ScheduleDailyReminder(hhmm string) error {
	return s.schedule(KindDaily, hhmm)
}

func (s *Scheduler) CancelDailyReminder() {
	s.cancelKind(KindDaily)
}

func (s *Scheduler) ScheduleQuizReminder(hhmm string) error {
	return s.schedule(KindQuiz, hhmm)
}

func (s *Scheduler) CancelQuizReminder() {
	s.cancelKind(KindQuiz)
}

func (s *Scheduler) schedule(kind Kind, hhmm string) error {
	hour, minute, err := ParseTime(hhmm)
	if err != nil {
		return err
	}
	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.jobs[kind]; ok {
		s.cron.Remove(old.id)
	}
	r := Reminder{Kind: kind, At: hhmm, Message: messages[kind]}
	id := s.cron.Schedule(sched, cron.FuncJob(func() { s.fire(r) }))
	s.jobs[kind] = job{id: id, at: hhmm, schedule: sched}

	s.log.Info("reminder scheduled", "kind", kind, "at", hhmm)
	return nil
}

func (s *Scheduler) cancelKind(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.jobs[kind]
	if !ok {
		return
	}
	s.cron.Remove(old.id)
	delete(s.jobs, kind)
	s.log.Info("reminder cancelled", "kind", kind)
}

func (s *Scheduler) fire(r Reminder) {
	if err := s.notifier.Notify(s.ctx, r); err != nil {
		s.log.Warn("deliver reminder failed", "kind", r.Kind, "error", err)
	}
}

// Scheduled returns the "HH:MM" time of kind, if it is scheduled.
func (s *Scheduler) Scheduled(kind Kind) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[kind]
	return j.at, ok
}

// Next returns when kind fires next after from.
func (s *Scheduler) Next(kind Kind, from time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[kind]
	if !ok {
		return time.Time{}, false
	}
	return j.schedule.Next(from), true
}

// Start runs the cron in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron and waits for running reminders to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.cancel()
}

// Apply schedules or cancels each reminder to match the settings.
func (s *Scheduler) Apply(settings store.UserSettings) error {
	var errs []error

	if settings.NotificationsEnabled {
		errs = append(errs, s.ScheduleDailyReminder(settings.DailyReminderTime))
	} else {
		s.CancelDailyReminder()
	}

	if settings.QuizRemindersEnabled {
		errs = append(errs, s.ScheduleQuizReminder(settings.QuizReminderTime))
	} else {
		s.CancelQuizReminder()
	}

	return errors.Join(errs...)
}
