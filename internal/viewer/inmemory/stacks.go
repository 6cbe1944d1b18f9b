package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

// Dispatcher delivers events to the listeners of a viewport
type Dispatcher interface {
	Dispatch(ctx context.Context, vp viewer.ViewportID, name string, detail any)
}

// StackScrollDetail is the detail of a viewer.EventStackScroll event
type StackScrollDetail struct {
	NewImageIDIndex int
	Direction       int
}

// StackStore holds per-viewport stack descriptors
type StackStore struct {
	mu     sync.RWMutex
	stacks map[viewer.ViewportID]*viewer.Stack
	events Dispatcher
}

var _ viewer.StackStore = (*StackStore)(nil)

// NewStackStore creates an empty store. Scroll events are delivered through
// events, which may be nil.
func NewStackStore(events Dispatcher) *StackStore {
	return &StackStore{
		stacks: make(map[viewer.ViewportID]*viewer.Stack),
		events: events,
	}
}

// Set replaces the stack of vp
func (s *StackStore) Set(vp viewer.ViewportID, stack *viewer.Stack) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stacks[vp] = stack.Clone()
}

// Delete drops the stack of vp
func (s *StackStore) Delete(vp viewer.ViewportID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stacks, vp)
}

// Stack implements viewer.StackStore
func (s *StackStore) Stack(vp viewer.ViewportID) (*viewer.Stack, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stack, ok := s.stacks[vp]
	if !ok {
		return nil, false
	}
	return stack.Clone(), true
}

// SetCurrentImageIDIndex implements viewer.StackStore
func (s *StackStore) SetCurrentImageIDIndex(vp viewer.ViewportID, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stack, ok := s.stacks[vp]
	if !ok {
		return fmt.Errorf("%w: %s", viewer.ErrNoStack, vp)
	}
	if index < 0 || index >= len(stack.ImageIDs) {
		return fmt.Errorf("index %d out of range for stack of %d images", index, len(stack.ImageIDs))
	}
	stack.CurrentImageIDIndex = index
	return nil
}

// Scroll moves the current index of vp by delta, clamped to the stack bounds,
// and dispatches viewer.EventStackScroll when the index changed.
func (s *StackStore) Scroll(ctx context.Context, vp viewer.ViewportID, delta int) (int, error) {
	s.mu.Lock()
	stack, ok := s.stacks[vp]
	if !ok {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: %s", viewer.ErrNoStack, vp)
	}
	if len(stack.ImageIDs) == 0 {
		s.mu.Unlock()
		return 0, fmt.Errorf("stack of viewport '%s' is empty", vp)
	}
	previous := stack.CurrentImageIDIndex
	next := min(max(previous+delta, 0), len(stack.ImageIDs)-1)
	stack.CurrentImageIDIndex = next
	s.mu.Unlock()

	if next != previous && s.events != nil {
		s.events.Dispatch(ctx, vp, viewer.EventStackScroll, StackScrollDetail{
			NewImageIDIndex: next,
			Direction:       delta,
		})
	}
	return next, nil
}

// Jump moves the current index of vp to index, clamped to the stack bounds
func (s *StackStore) Jump(ctx context.Context, vp viewer.ViewportID, index int) (int, error) {
	stack, ok := s.Stack(vp)
	if !ok {
		return 0, fmt.Errorf("%w: %s", viewer.ErrNoStack, vp)
	}
	return s.Scroll(ctx, vp, index-stack.CurrentImageIDIndex)
}
