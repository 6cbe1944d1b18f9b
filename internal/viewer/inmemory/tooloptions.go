package inmemory

import (
	"maps"
	"sync"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

// ToolOptions stores per-viewport tool option bags
type ToolOptions struct {
	mu      sync.Mutex
	options map[viewer.ViewportID]map[string]any
}

var _ viewer.ToolOptions = (*ToolOptions)(nil)

// NewToolOptions creates an empty store
func NewToolOptions() *ToolOptions {
	return &ToolOptions{options: make(map[viewer.ViewportID]map[string]any)}
}

// Set stores an option for vp
func (t *ToolOptions) Set(vp viewer.ViewportID, key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.options[vp] == nil {
		t.options[vp] = make(map[string]any)
	}
	t.options[vp][key] = value
}

// Options returns a copy of the options of vp
func (t *ToolOptions) Options(vp viewer.ViewportID) map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.options[vp])
}

// ClearOptions implements viewer.ToolOptions
func (t *ToolOptions) ClearOptions(vp viewer.ViewportID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.options, vp)
}
