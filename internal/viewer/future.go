package viewer

import (
	"context"
	"sync"
)

// Future is the pending result of an asynchronous image load.
// It settles exactly once, either resolved with an image or rejected with an error.
type Future struct {
	done  chan struct{}
	once  sync.Once
	image *Image
	err   error
}

// NewFuture returns an unsettled future
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a future already resolved with img
func Resolved(img *Image) *Future {
	f := NewFuture()
	f.Resolve(img)
	return f
}

// Rejected returns a future already rejected with err
func Rejected(err error) *Future {
	f := NewFuture()
	f.Reject(err)
	return f
}

// Resolve settles the future with img. Later calls are ignored.
func (f *Future) Resolve(img *Image) {
	f.once.Do(func() {
		f.image = img
		close(f.done)
	})
}

// Reject settles the future with err. Later calls are ignored.
func (f *Future) Reject(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed once the future settles
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx is done
func (f *Future) Wait(ctx context.Context) (*Image, error) {
	select {
	case <-f.done:
		return f.image, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
