package synchronizer

import (
	"context"
	"sync"

	"github.com/stacklok/viewport-sync/internal/loading"
)

type job struct {
	ctx  context.Context
	fn   func(context.Context)
	done chan struct{}
}

// mailbox runs posted jobs one at a time, in posting order. A worker
// goroutine is started when the first job arrives and exits once the queue
// drains.
type mailbox struct {
	mu      sync.Mutex
	queue   []job
	running bool
	tracker *loading.Tracker
}

func (m *mailbox) post(j job) {
	m.tracker.Add(1)

	m.mu.Lock()
	m.queue = append(m.queue, j)
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	go m.drain()
}

func (m *mailbox) drain() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.running = false
			m.mu.Unlock()
			return
		}
		j := m.queue[0]
		m.queue[0] = job{}
		m.queue = m.queue[1:]
		m.mu.Unlock()

		j.fn(j.ctx)
		if j.done != nil {
			close(j.done)
		}
		m.tracker.Done()
	}
}

// run executes fn as work owned by s. Calls made from s's own work run
// inline. Calls made from another synchronizer's work are queued without
// waiting, so two synchronizers never block on each other. Any other call is
// queued and waits for fn to finish or ctx to be done.
func (s *defaultSynchronizer) run(ctx context.Context, fn func(context.Context)) {
	owner := ownerFromContext(ctx)
	if owner == s {
		fn(ctx)
		return
	}

	j := job{ctx: withOwner(ctx, s), fn: fn}
	if owner != nil {
		s.mailbox.post(j)
		return
	}

	j.done = make(chan struct{})
	s.mailbox.post(j)
	select {
	case <-j.done:
	case <-ctx.Done():
	}
}
