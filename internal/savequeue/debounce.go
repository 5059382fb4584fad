package savequeue

import (
	"sync"
	"time"
)

// DebounceWindow coalesces rapid successive edits into a single outbound
// posting attempt per key.
const DebounceWindow = 350 * time.Millisecond

// Debouncer delays a flush callback per QueueID, restarting the window on
// every trigger so only the last burst of edits produces a network attempt.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timers map[QueueID]*time.Timer
}

// NewDebouncer creates a debouncer; a window of 0 falls back to the default.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DebounceWindow
	}
	return &Debouncer{window: window, timers: make(map[QueueID]*time.Timer)}
}

// Trigger (re)starts the window for a key. fire runs once the key has been
// quiet for the full window.
func (d *Debouncer) Trigger(id QueueID, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[id]; ok {
		t.Stop()
	}
	d.timers[id] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.timers, id)
		d.mu.Unlock()
		fire()
	})
}

// Flush fires a pending key immediately, used by explicit save commands.
func (d *Debouncer) Flush(id QueueID) bool {
	d.mu.Lock()
	t, ok := d.timers[id]
	if ok {
		delete(d.timers, id)
	}
	d.mu.Unlock()
	if ok && t.Stop() {
		return true
	}
	return false
}

// Stop cancels every pending window, for session teardown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
}
