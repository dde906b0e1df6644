// Package autosave coalesces rapid edits into delayed saves. Two schedules
// cooperate: a debounce that fires a quiet period after the last keystroke
// and saves only the edited node's fields, and a fixed-interval full-tree
// flush that acts as a durability net for any path the debounce misses.
package autosave

import (
	"sync"
	"time"
)

const (
	// DefaultDebounce is the quiet period after the last keystroke before
	// the pending field save fires.
	DefaultDebounce = 1200 * time.Millisecond
	// DefaultInterval is the fixed full-tree flush period. It is not
	// restarted by activity.
	DefaultInterval = 20 * time.Second
)

// Engine owns both timers. Touch registers/replaces the pending debounce
// flush; the periodic loop keeps calling full. Flush and Close force the
// pending work synchronously, which is what selection changes, project
// switches, and shutdown require: the buffered edit for node A must hit disk
// before the detail pane is repointed at node B.
type Engine struct {
	debounce time.Duration
	interval time.Duration
	full     func()

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	closed  bool

	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

// New starts an engine. full is the periodic full-tree save; it may be nil
// when only debouncing is wanted (tests). Durations <= 0 get the defaults.
func New(debounce, interval time.Duration, full func()) *Engine {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	e := &Engine{
		debounce: debounce,
		interval: interval,
		full:     full,
		done:     make(chan struct{}),
	}
	if full != nil {
		e.ticker = time.NewTicker(interval)
		e.wg.Add(1)
		go e.loop()
	}
	return e
}

func (e *Engine) loop() {
	defer e.wg.Done()
	for {
		select {
		case <-e.ticker.C:
			e.full()
		case <-e.done:
			return
		}
	}
}

// Touch replaces the pending debounce flush and restarts the quiet-period
// timer. A later Touch supersedes an earlier one entirely: only the most
// recent flush runs, exactly once.
func (e *Engine) Touch(flush func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.pending = flush
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.fire)
}

func (e *Engine) fire() {
	e.mu.Lock()
	flush := e.pending
	e.pending = nil
	e.timer = nil
	e.mu.Unlock()
	if flush != nil {
		flush()
	}
}

// Flush runs any pending debounce save now, synchronously, and cancels its
// timer. Safe to call when nothing is pending.
func (e *Engine) Flush() {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	flush := e.pending
	e.pending = nil
	e.mu.Unlock()
	if flush != nil {
		flush()
	}
}

// Dirty reports whether a debounce save is still pending.
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != nil
}

// Close stops both schedules and flushes pending work. The engine is
// unusable afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	if e.ticker != nil {
		e.ticker.Stop()
		close(e.done)
		e.wg.Wait()
	}
	e.Flush()
}
