// Package notify is the user-visible message surface of the console.
// Notifications are fire-and-forget: sinks never return errors.
package notify

import (
	"context"
	"sync"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one message shown to the operator.
type Notification struct {
	Level     Level
	Message   string
	Timestamp time.Time
}

// Notifier shows notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Notification) {})

// Error is a shorthand for an error-level notification stamped now.
func Error(message string) Notification {
	return Notification{Level: LevelError, Message: message, Timestamp: time.Now()}
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu  sync.Mutex
	got []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.got))
	copy(out, r.got)
	return out
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, n := range r.got {
		out = append(out, n.Message)
	}
	return out
}
