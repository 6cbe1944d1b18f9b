package synchronizer

import (
	"context"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

// triggerListener is registered for every trigger event on every source
type triggerListener struct {
	sync *defaultSynchronizer
}

// HandleEvent starts a fan-out round unless the event was caused by this
// synchronizer's own work
func (l *triggerListener) HandleEvent(ctx context.Context, ev viewer.Event) {
	if l.sync.Guarded(ctx) {
		l.sync.logger.Debugf("Viewport '%s': ignoring %s fired while synchronizing", ev.Viewport, ev.Name)
		return
	}
	l.sync.FireEvent(ctx, ev.Viewport)
}

// disabledListener follows the runtime's disabled notification on every
// registered viewport
type disabledListener struct {
	sync *defaultSynchronizer
}

func (l *disabledListener) HandleEvent(ctx context.Context, ev viewer.Event) {
	vp := ev.Viewport
	l.sync.logger.Debugf("Viewport '%s': disabled by the runtime", vp)
	l.sync.Remove(ctx, vp)
	if l.sync.toolOptions != nil {
		l.sync.toolOptions.ClearOptions(vp)
	}
}

// refreshDisabledListeners makes the disabled listener registered on exactly
// the viewports that are a source or a target
func (s *defaultSynchronizer) refreshDisabledListeners() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	s.mu.RLock()
	registered := unionOf(s.sources, s.targets)
	s.mu.RUnlock()

	wanted := make(map[viewer.ViewportID]struct{}, len(registered))
	for _, vp := range registered {
		wanted[vp] = struct{}{}
		if _, ok := s.disabledOn[vp]; !ok {
			s.runtime.AddEventListener(vp, viewer.EventElementDisabled, s.disabled)
			s.disabledOn[vp] = struct{}{}
		}
	}
	for vp := range s.disabledOn {
		if _, ok := wanted[vp]; !ok {
			s.runtime.RemoveEventListener(vp, viewer.EventElementDisabled, s.disabled)
			delete(s.disabledOn, vp)
		}
	}
}
