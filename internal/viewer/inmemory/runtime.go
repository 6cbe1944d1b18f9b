// Package inmemory provides an in-process implementation of the viewer runtime
// contracts. Events are delivered synchronously on the caller's goroutine, the
// same way a DOM runtime dispatches them.
package inmemory

import (
	"context"
	"slices"
	"sync"

	"github.com/stacklok/viewport-sync/internal/logger"
	"github.com/stacklok/viewport-sync/internal/viewer"
)

type element struct {
	image *viewer.Image
	state *viewer.ViewportState
}

// Runtime implements viewer.Runtime on top of in-memory maps
type Runtime struct {
	mu        sync.RWMutex
	elements  map[viewer.ViewportID]*element
	listeners map[viewer.ViewportID]map[string][]viewer.Listener
	displays  map[viewer.ViewportID]int
	metadata  *MetadataStore
}

var _ viewer.Runtime = (*Runtime)(nil)

// NewRuntime creates an empty runtime resolving spatial metadata through metadata
func NewRuntime(metadata *MetadataStore) *Runtime {
	if metadata == nil {
		metadata = NewMetadataStore()
	}
	return &Runtime{
		elements:  make(map[viewer.ViewportID]*element),
		listeners: make(map[viewer.ViewportID]map[string][]viewer.Listener),
		displays:  make(map[viewer.ViewportID]int),
		metadata:  metadata,
	}
}

// Enable registers vp as an enabled element showing img.
// A nil state enables the viewport with a unit scale.
func (r *Runtime) Enable(vp viewer.ViewportID, img *viewer.Image, state *viewer.ViewportState) {
	if state == nil {
		state = &viewer.ViewportState{Scale: 1}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elements[vp] = &element{image: img, state: state.Clone()}
}

// Disable notifies listeners with viewer.EventElementDisabled and then drops vp
// from the element registry. Unknown viewports are ignored.
func (r *Runtime) Disable(ctx context.Context, vp viewer.ViewportID) {
	r.mu.RLock()
	_, ok := r.elements[vp]
	r.mu.RUnlock()
	if !ok {
		return
	}

	r.Dispatch(ctx, vp, viewer.EventElementDisabled, vp)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.elements, vp)
}

// EnabledElement implements viewer.ElementRegistry
func (r *Runtime) EnabledElement(vp viewer.ViewportID) (*viewer.EnabledElement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	el, ok := r.elements[vp]
	if !ok {
		return nil, false
	}
	return &viewer.EnabledElement{
		Viewport: vp,
		Image:    el.image,
		State:    el.state.Clone(),
	}, true
}

// Viewport implements viewer.Display
func (r *Runtime) Viewport(vp viewer.ViewportID) *viewer.ViewportState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if el, ok := r.elements[vp]; ok {
		return el.state.Clone()
	}
	return nil
}

// SetViewport implements viewer.Display
func (r *Runtime) SetViewport(_ context.Context, vp viewer.ViewportID, state *viewer.ViewportState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.elements[vp]
	if !ok {
		logger.Debugf("Viewport '%s': ignoring viewport update, element is not enabled", vp)
		return
	}
	el.state = state.Clone()
}

// DisplayImage implements viewer.Display. Listeners registered for
// viewer.EventNewImage are notified before it returns.
func (r *Runtime) DisplayImage(ctx context.Context, vp viewer.ViewportID, img *viewer.Image, state *viewer.ViewportState) {
	r.mu.Lock()
	el, ok := r.elements[vp]
	if !ok {
		r.mu.Unlock()
		logger.Debugf("Viewport '%s': ignoring display request, element is not enabled", vp)
		return
	}
	el.image = img
	if state != nil {
		el.state = state.Clone()
	}
	r.displays[vp]++
	r.mu.Unlock()

	r.Dispatch(ctx, vp, viewer.EventNewImage, img)
}

// DisplayCount returns how many times an image was displayed in vp
func (r *Runtime) DisplayCount(vp viewer.ViewportID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.displays[vp]
}

// SpatialMetadata implements viewer.MetadataProvider
func (r *Runtime) SpatialMetadata(imageID string) (*viewer.SpatialMetadata, bool) {
	return r.metadata.SpatialMetadata(imageID)
}

// AddEventListener implements viewer.EventTarget
func (r *Runtime) AddEventListener(vp viewer.ViewportID, name string, l viewer.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byName, ok := r.listeners[vp]
	if !ok {
		byName = make(map[string][]viewer.Listener)
		r.listeners[vp] = byName
	}
	if slices.Contains(byName[name], l) {
		return
	}
	byName[name] = append(byName[name], l)
}

// RemoveEventListener implements viewer.EventTarget
func (r *Runtime) RemoveEventListener(vp viewer.ViewportID, name string, l viewer.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byName, ok := r.listeners[vp]
	if !ok {
		return
	}
	idx := slices.Index(byName[name], l)
	if idx == -1 {
		return
	}
	byName[name] = slices.Delete(byName[name], idx, idx+1)
	if len(byName[name]) == 0 {
		delete(byName, name)
	}
	if len(byName) == 0 {
		delete(r.listeners, vp)
	}
}

// ListenerCount returns the number of listeners registered for name on vp.
// An empty name counts listeners of every event.
func (r *Runtime) ListenerCount(vp viewer.ViewportID, name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name != "" {
		return len(r.listeners[vp][name])
	}
	count := 0
	for _, ls := range r.listeners[vp] {
		count += len(ls)
	}
	return count
}

// Dispatch delivers an event to the listeners registered for name on vp.
// The listener set is captured before delivery so listeners may register or
// unregister themselves. Listeners receive ctx unchanged.
func (r *Runtime) Dispatch(ctx context.Context, vp viewer.ViewportID, name string, detail any) {
	r.mu.RLock()
	ls := slices.Clone(r.listeners[vp][name])
	r.mu.RUnlock()

	ev := viewer.Event{Name: name, Viewport: vp, Detail: detail}
	for _, l := range ls {
		l.HandleEvent(ctx, ev)
	}
}
