// Package stackimage provides the ordinal synchronization handler: it keeps the
// stack position of target viewports at a fixed distance from the position of
// the source, the distance being the difference of their registration indices.
package stackimage

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/stacklok/viewport-sync/internal/loading"
	"github.com/stacklok/viewport-sync/internal/logger"
	"github.com/stacklok/viewport-sync/internal/otel"
	"github.com/stacklok/viewport-sync/internal/synchronizer"
	"github.com/stacklok/viewport-sync/internal/viewer"
)

// ErrEmptyStack is returned when the target stack holds no image
var ErrEmptyStack = errors.New("target stack is empty")

// Handler synchronizes stack positions. Image loads complete asynchronously;
// Wait blocks until every load started so far has been applied or reported.
type Handler struct {
	stacks  viewer.StackStore
	loader  viewer.ImageLoader
	display viewer.Display
	hooks   *loading.Manager
	logger  *zap.SugaredLogger
	tracer  trace.Tracer

	ctx     context.Context
	cancel  context.CancelFunc
	tracker *loading.Tracker
}

var _ synchronizer.Handler = (*Handler)(nil)

// Option configures a Handler
type Option func(*Handler)

// WithHooks reports load progress through hooks
func WithHooks(hooks *loading.Manager) Option {
	return func(h *Handler) {
		if hooks != nil {
			h.hooks = hooks
		}
	}
}

// WithLogger sets the logger. Defaults to the process logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTracer wraps image loads in spans created by t
func WithTracer(t trace.Tracer) Option {
	return func(h *Handler) {
		h.tracer = t
	}
}

// WithTracker counts pending loads in t instead of a tracker owned by the
// handler. Sharing t with the synchronizers lets a caller wait for loads and
// the rounds they trigger.
func WithTracker(t *loading.Tracker) Option {
	return func(h *Handler) {
		if t != nil {
			h.tracker = t
		}
	}
}

// New creates a handler reading stacks from stacks, fetching images through
// loader and reading target display state from display
func New(stacks viewer.StackStore, loader viewer.ImageLoader, display viewer.Display, opts ...Option) *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handler{
		stacks:  stacks,
		loader:  loader,
		display: display,
		hooks:   loading.NewManager(loading.Hooks{}),
		logger:  logger.Named("stackimage"),
		ctx:     ctx,
		cancel:  cancel,
		tracker: loading.NewTracker(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Synchronize implements synchronizer.Handler
func (h *Handler) Synchronize(
	ctx context.Context,
	syncer synchronizer.Synchronizer,
	source, target viewer.ViewportID,
	sourceIndex, targetIndex int,
) error {
	if source == target {
		return nil
	}

	sourceStack, ok := h.stacks.Stack(source)
	if !ok {
		return fmt.Errorf("%w: %s", viewer.ErrNoStack, source)
	}
	targetStack, ok := h.stacks.Stack(target)
	if !ok {
		return fmt.Errorf("%w: %s", viewer.ErrNoStack, target)
	}
	if targetStack.Len() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyStack, target)
	}

	newIndex := TargetIndex(sourceStack.CurrentImageIDIndex, sourceIndex, targetIndex, targetStack.Len())
	imageID := targetStack.ImageIDs[newIndex]

	h.hooks.Started(target)

	// Loads outlive the fan-out round but keep its trace
	loadCtx := trace.ContextWithSpan(h.ctx, trace.SpanFromContext(ctx))
	loadCtx, span := otel.StartSpan(loadCtx, h.tracer, "stackimage.Load",
		trace.WithAttributes(
			otel.AttrSourceViewport.String(source.String()),
			otel.AttrTargetViewport.String(target.String()),
			otel.AttrImageID.String(imageID),
		),
	)

	var future *viewer.Future
	if targetStack.PreventCache {
		future = h.loader.LoadImage(loadCtx, imageID)
	} else {
		future = h.loader.LoadAndCacheImage(loadCtx, imageID)
	}

	h.tracker.Add(1)
	go func() {
		defer h.tracker.Done()
		defer span.End()
		if err := h.apply(loadCtx, syncer, target, newIndex, imageID, future); err != nil {
			otel.RecordError(span, err)
		}
	}()

	return nil
}

// apply waits for the load of imageID and displays it in target, or reports
// the failure through the error hook
func (h *Handler) apply(
	ctx context.Context,
	syncer synchronizer.Synchronizer,
	target viewer.ViewportID,
	index int,
	imageID string,
	future *viewer.Future,
) error {
	img, err := future.Wait(ctx)
	if err == nil {
		err = h.stacks.SetCurrentImageIDIndex(target, index)
	}
	if err != nil {
		h.logger.Debugf("Viewport '%s': failed to load image '%s': %v", target, imageID, err)
		h.hooks.Failed(target, imageID, err)
		return err
	}

	syncer.DisplayImage(ctx, target, img, h.display.Viewport(target))
	h.hooks.Ended(target, img)
	return nil
}

// Wait blocks until every load started so far has completed. With a shared
// tracker it also waits for the other work counted there.
func (h *Handler) Wait() {
	h.tracker.Wait()
}

// Close cancels pending loads and waits for them to be reported
func (h *Handler) Close() {
	h.cancel()
	h.tracker.Wait()
}

// TargetIndex maps the current index of the source stack to the index of a
// target stack of targetLen images. The source index is first clamped into
// the target range, then shifted by the registration distance and clamped again.
func TargetIndex(sourceCurrent, sourceIndex, targetIndex, targetLen int) int {
	last := targetLen - 1
	baseline := clamp(sourceCurrent, 0, last)
	return clamp(baseline+targetIndex-sourceIndex, 0, last)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
