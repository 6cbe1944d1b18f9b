package synchronizer

import (
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/stacklok/viewport-sync/internal/loading"
	"github.com/stacklok/viewport-sync/internal/telemetry"
	"github.com/stacklok/viewport-sync/internal/viewer"
)

// Option configures a synchronizer
type Option func(*defaultSynchronizer)

// WithLogger sets the logger. Defaults to the process logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *defaultSynchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records fan-out metrics into m
func WithMetrics(m *telemetry.SyncMetrics) Option {
	return func(s *defaultSynchronizer) {
		s.metrics = m
	}
}

// WithTracer wraps fan-out rounds in spans created by t
func WithTracer(t trace.Tracer) Option {
	return func(s *defaultSynchronizer) {
		s.tracer = t
	}
}

// WithToolOptions clears tool options of viewports the runtime disables
func WithToolOptions(t viewer.ToolOptions) Option {
	return func(s *defaultSynchronizer) {
		s.toolOptions = t
	}
}

// WithName sets the label used in logs and metrics
func WithName(name string) Option {
	return func(s *defaultSynchronizer) {
		if name != "" {
			s.name = name
		}
	}
}

// WithEnabled sets the initial enabled state. Defaults to true.
func WithEnabled(enabled bool) Option {
	return func(s *defaultSynchronizer) {
		s.enabled.Store(enabled)
	}
}

// WithTracker counts queued fan-out rounds and display mutations in t, so a
// caller sharing t with its handlers can wait for all of them to settle
func WithTracker(t *loading.Tracker) Option {
	return func(s *defaultSynchronizer) {
		s.mailbox.tracker = t
	}
}
