package synchronizer

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/stacklok/viewport-sync/internal/logger"
	"github.com/stacklok/viewport-sync/internal/otel"
	"github.com/stacklok/viewport-sync/internal/telemetry"
	"github.com/stacklok/viewport-sync/internal/viewer"
)

// DefaultName is the label of synchronizers created without WithName
const DefaultName = "default"

// defaultSynchronizer is the default implementation of Synchronizer
type defaultSynchronizer struct {
	name        string
	events      []string
	runtime     viewer.Runtime
	toolOptions viewer.ToolOptions
	logger      *zap.SugaredLogger
	metrics     *telemetry.SyncMetrics
	tracer      trace.Tracer

	enabled atomic.Bool

	// mailbox serializes fan-out rounds and display mutations
	mailbox mailbox

	// mu guards the registry, the distance table and the handler
	mu        sync.RWMutex
	sources   []viewer.ViewportID
	targets   []viewer.ViewportID
	distances Distances
	snapshot  imageIDSnapshot
	handler   Handler

	// rebuildMu serializes distance rebuilds
	rebuildMu sync.Mutex

	// listenerMu guards disabledOn
	listenerMu sync.Mutex
	disabledOn map[viewer.ViewportID]struct{}

	trigger  *triggerListener
	disabled *disabledListener
}

// New creates a synchronizer listening for events on every source of runtime.
// events is parsed with ParseEvents.
func New(runtime viewer.Runtime, events []string, handler Handler, opts ...Option) (Synchronizer, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}
	names, err := ParseEvents(events...)
	if err != nil {
		return nil, err
	}

	s := &defaultSynchronizer{
		name:       DefaultName,
		events:     names,
		runtime:    runtime,
		logger:     logger.Named("synchronizer"),
		distances:  Distances{},
		handler:    handler,
		disabledOn: make(map[viewer.ViewportID]struct{}),
	}
	s.enabled.Store(true)
	s.trigger = &triggerListener{sync: s}
	s.disabled = &disabledListener{sync: s}

	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("synchronizer", s.name)

	return s, nil
}

func (s *defaultSynchronizer) Name() string {
	return s.name
}

func (s *defaultSynchronizer) SetHandler(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

func (s *defaultSynchronizer) Handler() Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handler
}

func (s *defaultSynchronizer) Enabled() bool {
	return s.enabled.Load()
}

func (s *defaultSynchronizer) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

func (s *defaultSynchronizer) AddSource(ctx context.Context, vp viewer.ViewportID) {
	s.mu.Lock()
	if slices.Contains(s.sources, vp) {
		s.mu.Unlock()
		return
	}
	s.sources = append(s.sources, vp)
	s.mu.Unlock()

	for _, name := range s.events {
		s.runtime.AddEventListener(vp, name, s.trigger)
	}

	s.rebuildDistances()
	s.refreshDisabledListeners()
	s.recordViewports(ctx)
	s.logger.Debugf("Viewport '%s': added as source", vp)
}

func (s *defaultSynchronizer) AddTarget(ctx context.Context, vp viewer.ViewportID) {
	s.mu.Lock()
	if slices.Contains(s.targets, vp) {
		s.mu.Unlock()
		return
	}
	s.targets = append(s.targets, vp)
	s.mu.Unlock()

	s.rebuildDistances()
	s.synchronizeSelf(ctx, vp)
	s.refreshDisabledListeners()
	s.recordViewports(ctx)
	s.logger.Debugf("Viewport '%s': added as target", vp)
}

func (s *defaultSynchronizer) Add(ctx context.Context, vp viewer.ViewportID) {
	s.AddSource(ctx, vp)
	s.AddTarget(ctx, vp)
}

func (s *defaultSynchronizer) RemoveSource(ctx context.Context, vp viewer.ViewportID) {
	s.mu.Lock()
	idx := slices.Index(s.sources, vp)
	if idx == -1 {
		s.mu.Unlock()
		return
	}
	s.sources = slices.Delete(s.sources, idx, idx+1)
	s.mu.Unlock()

	for _, name := range s.events {
		s.runtime.RemoveEventListener(vp, name, s.trigger)
	}

	s.rebuildDistances()
	s.FireEvent(ctx, vp)
	s.refreshDisabledListeners()
	s.recordViewports(ctx)
	s.logger.Debugf("Viewport '%s': removed as source", vp)
}

func (s *defaultSynchronizer) RemoveTarget(ctx context.Context, vp viewer.ViewportID) {
	s.mu.Lock()
	idx := slices.Index(s.targets, vp)
	if idx == -1 {
		s.mu.Unlock()
		return
	}
	s.targets = slices.Delete(s.targets, idx, idx+1)
	s.mu.Unlock()

	s.rebuildDistances()
	s.synchronizeSelf(ctx, vp)
	s.refreshDisabledListeners()
	s.recordViewports(ctx)
	s.logger.Debugf("Viewport '%s': removed as target", vp)
}

func (s *defaultSynchronizer) Remove(ctx context.Context, vp viewer.ViewportID) {
	s.RemoveTarget(ctx, vp)
	s.RemoveSource(ctx, vp)
}

func (s *defaultSynchronizer) SourceElements() []viewer.ViewportID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sources)
}

func (s *defaultSynchronizer) TargetElements() []viewer.ViewportID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.targets)
}

func (s *defaultSynchronizer) DisplayImage(
	ctx context.Context,
	vp viewer.ViewportID,
	img *viewer.Image,
	state *viewer.ViewportState,
) {
	s.run(ctx, func(ctx context.Context) {
		s.runtime.DisplayImage(ctx, vp, img, state)
	})
}

func (s *defaultSynchronizer) SetViewport(ctx context.Context, vp viewer.ViewportID, state *viewer.ViewportState) {
	s.run(ctx, func(ctx context.Context) {
		s.runtime.SetViewport(ctx, vp, state)
	})
}

func (s *defaultSynchronizer) Guarded(ctx context.Context) bool {
	return ownerFromContext(ctx) == s
}

func (s *defaultSynchronizer) FireEvent(ctx context.Context, source viewer.ViewportID) {
	s.run(ctx, func(ctx context.Context) {
		s.fireEvent(ctx, source)
	})
}

// fireEvent runs one fan-out round. It must run as work owned by s.
func (s *defaultSynchronizer) fireEvent(ctx context.Context, source viewer.ViewportID) {
	if !s.Enabled() {
		return
	}

	s.mu.RLock()
	if len(s.sources) == 0 || len(s.targets) == 0 {
		s.mu.RUnlock()
		return
	}
	targets := slices.Clone(s.targets)
	handler := s.handler
	s.mu.RUnlock()

	roundID := uuid.NewString()
	ctx, span := otel.StartSpan(ctx, s.tracer, "synchronizer.FireEvent",
		trace.WithAttributes(
			otel.AttrSynchronizer.String(s.name),
			otel.AttrRoundID.String(roundID),
			otel.AttrSourceViewport.String(source.String()),
		),
	)
	defer span.End()

	pairs, skipped, failed := 0, 0, 0
	for _, target := range targets {
		pair, ok := s.lookupPair(source, target)
		if !ok {
			skipped++
			continue
		}
		pairs++

		pairCtx := ctx
		if pair.hasOffset {
			pairCtx = withOffset(ctx, pair.offset)
		}
		if err := s.invoke(pairCtx, handler, source, target, pair.sourceIndex, pair.targetIndex); err != nil {
			failed++
			s.logger.Warnw("Handler failed", "round", roundID, "source", source, "target", target, "error", err)
			s.metrics.RecordHandlerError(ctx, s.name)
			otel.RecordError(span, err)
		}
	}

	span.SetAttributes(otel.AttrPairCount.Int(pairs), otel.AttrSkippedCount.Int(skipped))
	s.metrics.RecordFanout(ctx, s.name, pairs)
	s.logger.Debugf("Round %s from '%s': %d pairs, %d skipped, %d failed", roundID, source, pairs, skipped, failed)
}

type pairInfo struct {
	sourceIndex int
	targetIndex int
	offset      viewer.Vector3
	hasOffset   bool
}

// lookupPair resolves the current registration indices of a pair and the
// offset between the images they showed at the last rebuild
func (s *defaultSynchronizer) lookupPair(source, target viewer.ViewportID) (pairInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	targetIndex := slices.Index(s.targets, target)
	if targetIndex == -1 {
		return pairInfo{}, false
	}
	sourceIndex := slices.Index(s.sources, source)
	if sourceIndex == -1 {
		return pairInfo{}, false
	}

	pair := pairInfo{sourceIndex: sourceIndex, targetIndex: targetIndex}
	sourceImageID, okSource := s.snapshot.source(sourceIndex)
	targetImageID, okTarget := s.snapshot.target(targetIndex)
	if okSource && okTarget {
		pair.offset, pair.hasOffset = s.offsetLocked(sourceImageID, targetImageID)
	}
	return pair, true
}

// synchronizeSelf invokes the handler with vp as both source and target,
// which handlers treat as the initialize or reset signal
func (s *defaultSynchronizer) synchronizeSelf(ctx context.Context, vp viewer.ViewportID) {
	s.run(ctx, func(ctx context.Context) {
		if err := s.invoke(ctx, s.Handler(), vp, vp, 0, 0); err != nil {
			s.logger.Warnw("Handler failed", "source", vp, "target", vp, "error", err)
			s.metrics.RecordHandlerError(ctx, s.name)
		}
	})
}

// invoke calls h for one pair, converting errors and panics into a HandlerError
func (s *defaultSynchronizer) invoke(
	ctx context.Context,
	h Handler,
	source, target viewer.ViewportID,
	sourceIndex, targetIndex int,
) (err error) {
	if h == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = &HandlerError{Source: source, Target: target, Err: fmt.Errorf("handler panicked: %v", r)}
		}
	}()

	if err := h.Synchronize(ctx, s, source, target, sourceIndex, targetIndex); err != nil {
		return &HandlerError{Source: source, Target: target, Err: err}
	}
	return nil
}

func (s *defaultSynchronizer) Destroy(ctx context.Context) {
	s.mu.RLock()
	registered := unionOf(s.sources, s.targets)
	s.mu.RUnlock()

	for _, vp := range registered {
		s.Remove(ctx, vp)
	}
	s.refreshDisabledListeners()
	s.logger.Debugf("Destroyed, released %d viewports", len(registered))
}

func (s *defaultSynchronizer) recordViewports(ctx context.Context) {
	s.mu.RLock()
	sources, targets := len(s.sources), len(s.targets)
	s.mu.RUnlock()
	s.metrics.RecordViewports(ctx, s.name, sources, targets)
}

// unionOf returns the viewports of a followed by those of b not in a
func unionOf(a, b []viewer.ViewportID) []viewer.ViewportID {
	union := slices.Clone(a)
	for _, vp := range b {
		if !slices.Contains(union, vp) {
			union = append(union, vp)
		}
	}
	return union
}
