package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	badgeBase = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	badges = map[Level]lipgloss.Style{
		LevelInfo:    badgeBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3C7DD9")),
		LevelWarning: badgeBase.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#E6B422")),
		LevelError:   badgeBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#D9453C")),
	}

	timeStyle = lipgloss.NewStyle().Faint(true)
)

// Terminal prints one styled line per notification. Concurrent
// notifications never interleave.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Notify(_ context.Context, n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	line := Render(n)

	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, line)
}

// Render formats n as "<badge> hh:mm:ss message".
func Render(n Notification) string {
	badge, ok := badges[n.Level]
	if !ok {
		badge = badges[LevelInfo]
	}
	return fmt.Sprintf("%s %s %s",
		badge.Render(string(n.Level)),
		timeStyle.Render(n.Timestamp.Format(time.TimeOnly)),
		n.Message,
	)
}
