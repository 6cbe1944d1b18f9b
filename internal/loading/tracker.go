package loading

import "sync"

// Tracker counts in-flight work that may spawn more work. Unlike a
// sync.WaitGroup, Add may be called from zero while another goroutine is in
// Wait, so loads started by other loads keep the waiter blocked until the
// whole chain settles. A nil Tracker ignores every call.
type Tracker struct {
	mu      sync.Mutex
	idle    *sync.Cond
	pending int
}

// NewTracker creates an idle tracker
func NewTracker() *Tracker {
	t := &Tracker{}
	t.idle = sync.NewCond(&t.mu)
	return t
}

// Add registers n units of work
func (t *Tracker) Add(n int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending += n
	if t.pending < 0 {
		panic("loading: negative tracker count")
	}
	if t.pending == 0 {
		t.idle.Broadcast()
	}
}

// Done marks one unit of work as finished
func (t *Tracker) Done() {
	t.Add(-1)
}

// Pending returns the number of units of work in flight
func (t *Tracker) Pending() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Wait blocks until no work is in flight
func (t *Tracker) Wait() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for t.pending > 0 {
		t.idle.Wait()
	}
}
