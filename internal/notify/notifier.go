// Package notify implements the transient success banner: a message that
// self-clears after a fixed display duration.
package notify

import (
	"sync"
	"time"
)

type Notifier struct {
	mu       sync.Mutex
	msg      string
	duration time.Duration
	timer    *time.Timer

	// after is a test seam for time.AfterFunc.
	after func(d time.Duration, f func()) *time.Timer
}

func New(duration time.Duration) *Notifier {
	return &Notifier{duration: duration, after: time.AfterFunc}
}

// Show displays msg, replacing any current banner and restarting the
// display window.
func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.msg = msg
	n.timer = n.after(n.duration, n.clear)
}

func (n *Notifier) clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msg = ""
	n.timer = nil
}

// Active returns the currently displayed message, if any.
func (n *Notifier) Active() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg, n.msg != ""
}
