// Package replay runs scripted viewer sessions against the synchronization
// engine. A scenario declares viewports with their image stacks, groups of
// viewports linked through a synchronizer, and a list of user actions. The
// runner builds an in-memory viewer, applies the actions one by one, waits for
// every image load they caused, and reports where each viewport ended up.
package replay

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/stacklok/viewport-sync/internal/config"
	"github.com/stacklok/viewport-sync/internal/loading"
	"github.com/stacklok/viewport-sync/internal/logger"
	"github.com/stacklok/viewport-sync/internal/synchronizer"
	"github.com/stacklok/viewport-sync/internal/synchronizer/stackimage"
	"github.com/stacklok/viewport-sync/internal/telemetry"
	"github.com/stacklok/viewport-sync/internal/viewer"
	"github.com/stacklok/viewport-sync/internal/viewer/inmemory"
)

// ErrInjectedFailure is the load error used by fail steps without a message
var ErrInjectedFailure = errors.New("injected load failure")

// Runner replays scenarios
type Runner struct {
	cfg     *config.Config
	metrics *telemetry.SyncMetrics
	tracer  trace.Tracer
	logger  *zap.SugaredLogger
}

// Option configures a Runner
type Option func(*Runner)

// WithMetrics records synchronizer and loader metrics into m
func WithMetrics(m *telemetry.SyncMetrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithTracer traces fan-out rounds and image loads with t
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		r.tracer = t
	}
}

// NewRunner creates a runner for the scenario of cfg
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: logger.Named("replay"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// session is the in-memory viewer built for one run
type session struct {
	runtime  *inmemory.Runtime
	stacks   *inmemory.StackStore
	images   *inmemory.ImageStore
	tools    *inmemory.ToolOptions
	loader   viewer.ImageLoader
	groups   map[string]synchronizer.Synchronizer
	handlers []*stackimage.Handler
	logger   *zap.SugaredLogger

	// tracker counts pending loads and queued rounds of every group
	tracker *loading.Tracker

	mu       sync.Mutex
	failures []LoadFailure
}

// Run replays the scenario and returns the final state of the session
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	scenario := &r.cfg.Scenario
	runID := uuid.NewString()
	log := r.logger.With("run", runID)

	log.Infof("Replaying scenario '%s': %d viewports, %d groups, %d steps",
		scenario.Name, len(scenario.Viewports), len(scenario.Groups), len(scenario.Steps))

	s, err := r.newSession(ctx, log)
	if err != nil {
		return nil, err
	}
	defer s.close(ctx)

	for i := range scenario.Steps {
		step := &scenario.Steps[i]
		if err := s.apply(ctx, step); err != nil {
			return nil, fmt.Errorf("step[%d] (%s): %w", i, step.Action, err)
		}
		s.wait()
		log.Debugf("Applied step %d: %s", i, step.Action)
	}

	report := s.report(scenario)
	report.RunID = runID
	report.Scenario = scenario.Name
	report.Steps = len(scenario.Steps)

	log.Infof("Replay finished: %d load failures", len(report.Failures))
	return report, nil
}

func (r *Runner) newSession(ctx context.Context, log *zap.SugaredLogger) (*session, error) {
	metadata := inmemory.NewMetadataStore()
	rt := inmemory.NewRuntime(metadata)
	images := inmemory.NewImageStore(
		inmemory.WithLatency(r.cfg.Loader.GetLatency()),
		inmemory.WithLoadMetrics(r.metrics),
	)

	s := &session{
		runtime: rt,
		stacks:  inmemory.NewStackStore(rt),
		images:  images,
		tools:   inmemory.NewToolOptions(),
		loader: loading.NewRetryingLoader(images,
			loading.WithMaxTries(uint(r.cfg.Loader.GetMaxTries())),
			loading.WithInitialInterval(r.cfg.Loader.GetInitialInterval()),
		),
		groups:  make(map[string]synchronizer.Synchronizer),
		logger:  log,
		tracker: loading.NewTracker(),
	}

	for i := range r.cfg.Scenario.Viewports {
		if err := s.addViewport(&r.cfg.Scenario.Viewports[i], metadata); err != nil {
			return nil, err
		}
	}

	hooks := loading.NewManager(loading.Hooks{
		Start: func(vp viewer.ViewportID) {
			log.Debugf("Viewport '%s': loading", vp)
		},
		End: func(vp viewer.ViewportID, img *viewer.Image) {
			log.Debugf("Viewport '%s': displayed '%s'", vp, img.ImageID)
		},
		Error: s.recordFailure,
	})

	for i := range r.cfg.Scenario.Groups {
		group := &r.cfg.Scenario.Groups[i]
		handler := stackimage.New(s.stacks, s.loader, rt,
			stackimage.WithHooks(hooks),
			stackimage.WithTracer(r.tracer),
			stackimage.WithLogger(log.Named("stackimage")),
			stackimage.WithTracker(s.tracker),
		)
		s.handlers = append(s.handlers, handler)

		syncer, err := synchronizer.New(rt, []string{r.cfg.GetEvents(group)}, handler,
			synchronizer.WithName(group.Name),
			synchronizer.WithEnabled(!group.Disabled),
			synchronizer.WithLogger(log.Named("synchronizer")),
			synchronizer.WithMetrics(r.metrics),
			synchronizer.WithTracer(r.tracer),
			synchronizer.WithToolOptions(s.tools),
			synchronizer.WithTracker(s.tracker),
		)
		if err != nil {
			s.close(ctx)
			return nil, fmt.Errorf("group '%s': %w", group.Name, err)
		}
		s.groups[group.Name] = syncer

		for _, id := range group.Both {
			syncer.Add(ctx, viewer.ViewportID(id))
		}
		for _, id := range group.Sources {
			syncer.AddSource(ctx, viewer.ViewportID(id))
		}
		for _, id := range group.Targets {
			syncer.AddTarget(ctx, viewer.ViewportID(id))
		}
	}

	s.wait()
	return s, nil
}

// addViewport makes the images of vp loadable and enables it on its current image
func (s *session) addViewport(vp *config.ViewportConfig, metadata *inmemory.MetadataStore) error {
	ids := vp.ImageIDs()
	positions := vp.Positions()

	for i, id := range ids {
		s.images.Put(&viewer.Image{ImageID: id})
		if positions[i] == nil {
			continue
		}
		pos, err := viewer.ToVector3(positions[i])
		if err != nil {
			return fmt.Errorf("viewport '%s': image '%s': %w", vp.ID, id, err)
		}
		metadata.PutPosition(id, pos)
	}

	id := viewer.ViewportID(vp.ID)
	s.stacks.Set(id, &viewer.Stack{
		ImageIDs:            ids,
		CurrentImageIDIndex: vp.CurrentIndex,
		PreventCache:        vp.PreventCache,
	})
	s.runtime.Enable(id, &viewer.Image{ImageID: ids[vp.CurrentIndex]}, nil)
	return nil
}

// apply performs one scripted action
func (s *session) apply(ctx context.Context, step *config.StepConfig) error {
	vp := viewer.ViewportID(step.Viewport)

	switch step.Action {
	case config.ActionScroll:
		if _, err := s.stacks.Scroll(ctx, vp, step.Delta); err != nil {
			return err
		}
		return s.displayCurrent(ctx, vp)
	case config.ActionJump:
		if _, err := s.stacks.Jump(ctx, vp, step.Index); err != nil {
			return err
		}
		return s.displayCurrent(ctx, vp)
	case config.ActionDisable:
		s.runtime.Disable(ctx, vp)
		return nil
	case config.ActionRemove:
		for name, syncer := range s.groups {
			if step.Group == "" || step.Group == name {
				syncer.Remove(ctx, vp)
			}
		}
		return nil
	case config.ActionEnable, config.ActionDisableSync:
		syncer, ok := s.groups[step.Group]
		if !ok {
			return fmt.Errorf("unknown group '%s'", step.Group)
		}
		syncer.SetEnabled(step.Action == config.ActionEnable)
		return nil
	case config.ActionFail:
		err := ErrInjectedFailure
		if step.Error != "" {
			err = fmt.Errorf("%w: %s", ErrInjectedFailure, step.Error)
		}
		s.images.Fail(step.Image, err)
		return nil
	default:
		return fmt.Errorf("unknown action '%s'", step.Action)
	}
}

// displayCurrent shows the current stack image of vp, as a scroll tool would
func (s *session) displayCurrent(ctx context.Context, vp viewer.ViewportID) error {
	stack, ok := s.stacks.Stack(vp)
	if !ok {
		return fmt.Errorf("%w: %s", viewer.ErrNoStack, vp)
	}
	imageID := stack.ImageIDs[stack.CurrentImageIDIndex]

	var future *viewer.Future
	if stack.PreventCache {
		future = s.loader.LoadImage(ctx, imageID)
	} else {
		future = s.loader.LoadAndCacheImage(ctx, imageID)
	}
	img, err := future.Wait(ctx)
	if err != nil {
		s.recordFailure(vp, imageID, err)
		return nil
	}
	s.runtime.DisplayImage(ctx, vp, img, s.runtime.Viewport(vp))
	return nil
}

func (s *session) recordFailure(vp viewer.ViewportID, imageID string, err error) {
	s.logger.Warnf("Viewport '%s': failed to load '%s': %v", vp, imageID, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, LoadFailure{Viewport: vp.String(), ImageID: imageID, Error: err.Error()})
}

// wait blocks until every load started by the handlers has completed,
// including the loads of rounds those loads triggered in other groups
func (s *session) wait() {
	s.tracker.Wait()
}

func (s *session) close(ctx context.Context) {
	for _, syncer := range s.groups {
		syncer.Destroy(ctx)
	}
	for _, h := range s.handlers {
		h.Close()
	}
}

func (s *session) report(scenario *config.ScenarioConfig) *Report {
	report := &Report{}

	for _, vp := range scenario.Viewports {
		id := viewer.ViewportID(vp.ID)
		entry := ViewportReport{ID: vp.ID, Displays: s.runtime.DisplayCount(id)}
		if stack, ok := s.stacks.Stack(id); ok {
			entry.Index = stack.CurrentImageIDIndex
		}
		if el, ok := s.runtime.EnabledElement(id); ok {
			entry.Enabled = true
			if el.Image != nil {
				entry.ImageID = el.Image.ImageID
			}
		}
		report.Viewports = append(report.Viewports, entry)
	}

	for _, group := range scenario.Groups {
		syncer := s.groups[group.Name]
		distances := 0
		for _, row := range syncer.Distances() {
			distances += len(row)
		}
		report.Groups = append(report.Groups, GroupReport{
			Name:      group.Name,
			Enabled:   syncer.Enabled(),
			Sources:   toStrings(syncer.SourceElements()),
			Targets:   toStrings(syncer.TargetElements()),
			Distances: distances,
		})
	}

	s.mu.Lock()
	report.Failures = slices.Clone(s.failures)
	s.mu.Unlock()

	return report
}

func toStrings(vps []viewer.ViewportID) []string {
	out := make([]string, len(vps))
	for i, vp := range vps {
		out[i] = vp.String()
	}
	return out
}
