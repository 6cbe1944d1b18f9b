// Package loading coordinates the image load lifecycle seen by synchronization
// handlers: the start/end/error hooks a viewer uses to drive loading
// indicators, and a loader decorator that retries transient failures.
package loading

import (
	"sync"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

// StartFunc is called when a load for vp begins
type StartFunc func(vp viewer.ViewportID)

// EndFunc is called once the image for vp has been displayed
type EndFunc func(vp viewer.ViewportID, img *viewer.Image)

// ErrorFunc is called when loading imageID for vp failed
type ErrorFunc func(vp viewer.ViewportID, imageID string, err error)

// Hooks is a snapshot of the configured load hooks. Nil hooks are skipped.
type Hooks struct {
	Start StartFunc
	End   EndFunc
	Error ErrorFunc
}

// Manager holds the process-wide load hooks. The zero value has no hooks.
type Manager struct {
	mu    sync.RWMutex
	hooks Hooks
}

// NewManager creates a manager with the given initial hooks
func NewManager(hooks Hooks) *Manager {
	return &Manager{hooks: hooks}
}

// SetStartHandler replaces the start hook
func (m *Manager) SetStartHandler(fn StartFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks.Start = fn
}

// SetEndHandler replaces the end hook
func (m *Manager) SetEndHandler(fn EndFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks.End = fn
}

// SetErrorHandler replaces the error hook
func (m *Manager) SetErrorHandler(fn ErrorFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks.Error = fn
}

// Hooks returns the current hooks
func (m *Manager) Hooks() Hooks {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hooks
}

// Started invokes the start hook, if any
func (m *Manager) Started(vp viewer.ViewportID) {
	if fn := m.Hooks().Start; fn != nil {
		fn(vp)
	}
}

// Ended invokes the end hook, if any
func (m *Manager) Ended(vp viewer.ViewportID, img *viewer.Image) {
	if fn := m.Hooks().End; fn != nil {
		fn(vp, img)
	}
}

// Failed invokes the error hook, if any
func (m *Manager) Failed(vp viewer.ViewportID, imageID string, err error) {
	if fn := m.Hooks().Error; fn != nil {
		fn(vp, imageID, err)
	}
}
