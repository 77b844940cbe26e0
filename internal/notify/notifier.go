package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
)

// Kind names a reminder slot. Each kind holds at most one schedule.
type Kind string

const (
	KindDaily Kind = "daily"
	KindQuiz  Kind = "quiz"
)

// Reminder is what gets delivered when a schedule fires.
type Reminder struct {
	Kind    Kind
	At      string // "HH:MM"
	Message string
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier records reminders in the application log.
type LogNotifier struct {
	Log *logger.Logger
}

func (n LogNotifier) Notify(_ context.Context, r Reminder) error {
	logger.OrNop(n.Log).Info("reminder", "kind", r.Kind, "at", r.At, "message", r.Message)
	return nil
}

// WriterNotifier prints reminders, with a terminal bell, to W.
type WriterNotifier struct {
	mu sync.Mutex
	W  io.Writer
}

func (n *WriterNotifier) Notify(_ context.Context, r Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.W, "\a[%s] %s\n", r.At, r.Message)
	return err
}
