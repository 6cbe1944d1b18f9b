package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

var (
	// ErrNoTriggerEvents is returned when a synchronizer is configured without trigger events
	ErrNoTriggerEvents = errors.New("at least one trigger event is required")

	// ErrNilRuntime is returned when a synchronizer is created without a runtime
	ErrNilRuntime = errors.New("runtime is required")
)

// Handler synchronizes one target viewport with one source viewport.
//
// sourceIndex and targetIndex are the registration positions of the two
// viewports in the synchronizer. When a target is added or removed the handler
// is called once with source == target and both indices zero.
//
//go:generate mockgen -destination=mocks/mock_handler.go -package=mocks github.com/stacklok/viewport-sync/internal/synchronizer Handler
type Handler interface {
	Synchronize(
		ctx context.Context,
		sync Synchronizer,
		source, target viewer.ViewportID,
		sourceIndex, targetIndex int,
	) error
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(
	ctx context.Context,
	sync Synchronizer,
	source, target viewer.ViewportID,
	sourceIndex, targetIndex int,
) error

// Synchronize calls f
func (f HandlerFunc) Synchronize(
	ctx context.Context,
	sync Synchronizer,
	source, target viewer.ViewportID,
	sourceIndex, targetIndex int,
) error {
	return f(ctx, sync, source, target, sourceIndex, targetIndex)
}

// HandlerError is reported when the handler fails for one pair
type HandlerError struct {
	Source viewer.ViewportID
	Target viewer.ViewportID
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("synchronize %s -> %s: %v", e.Source, e.Target, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Distances is the sparse offset table keyed by source image id, then target
// image id. Each vector is the target image position minus the source one.
type Distances map[string]map[string]viewer.Vector3

// Synchronizer links source viewports to target viewports
//
//go:generate mockgen -destination=mocks/mock_synchronizer.go -package=mocks github.com/stacklok/viewport-sync/internal/synchronizer Synchronizer
type Synchronizer interface {
	// Name returns the label used in logs and metrics
	Name() string

	// SetHandler replaces the active handler, effective from the next event
	SetHandler(h Handler)

	// Handler returns the active handler
	Handler() Handler

	// Enabled reports whether trigger events are fanned out
	Enabled() bool

	// SetEnabled turns fan-out on or off. Registration keeps working while disabled.
	SetEnabled(enabled bool)

	// AddSource registers vp as a source. Adding an existing source is a no-op.
	AddSource(ctx context.Context, vp viewer.ViewportID)

	// AddTarget registers vp as a target and initializes it through the handler.
	// Adding an existing target is a no-op.
	AddTarget(ctx context.Context, vp viewer.ViewportID)

	// Add registers vp as both source and target
	Add(ctx context.Context, vp viewer.ViewportID)

	// RemoveSource unregisters the source vp and lets the remaining targets settle
	RemoveSource(ctx context.Context, vp viewer.ViewportID)

	// RemoveTarget unregisters the target vp and sends it the reset signal
	RemoveTarget(ctx context.Context, vp viewer.ViewportID)

	// Remove unregisters vp from both sets
	Remove(ctx context.Context, vp viewer.ViewportID)

	// SourceElements returns the sources in registration order
	SourceElements() []viewer.ViewportID

	// TargetElements returns the targets in registration order
	TargetElements() []viewer.ViewportID

	// Distances rebuilds the offset table and returns a copy of it
	Distances() Distances

	// Offset returns the cached offset from sourceImageID to targetImageID
	Offset(sourceImageID, targetImageID string) (viewer.Vector3, bool)

	// DisplayImage renders img in vp without re-triggering the synchronizer.
	// Handlers pass the context they were invoked with.
	DisplayImage(ctx context.Context, vp viewer.ViewportID, img *viewer.Image, state *viewer.ViewportState)

	// SetViewport updates the state of vp without re-triggering the synchronizer
	SetViewport(ctx context.Context, vp viewer.ViewportID, state *viewer.ViewportState)

	// FireEvent runs one fan-out round as if vp had fired a trigger event
	FireEvent(ctx context.Context, vp viewer.ViewportID)

	// Guarded reports whether ctx belongs to work this synchronizer is
	// performing. Trigger events delivered with such a context are ignored.
	Guarded(ctx context.Context) bool

	// Destroy removes every registered viewport
	Destroy(ctx context.Context)
}

// ParseEvents normalizes trigger event lists. Each argument may hold
// several space separated names; duplicates are dropped keeping the first one.
func ParseEvents(lists ...string) ([]string, error) {
	var events []string
	for _, list := range lists {
		for _, name := range strings.Fields(list) {
			if !slices.Contains(events, name) {
				events = append(events, name)
			}
		}
	}
	if len(events) == 0 {
		return nil, ErrNoTriggerEvents
	}
	return events, nil
}
