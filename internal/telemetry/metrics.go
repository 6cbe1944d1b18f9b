package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// SyncMetricsMeterName is the name used for the synchronizer metrics meter
	SyncMetricsMeterName = "github.com/stacklok/viewport-sync/synchronizer"

	// TracerName is the name used for synchronizer spans
	TracerName = "github.com/stacklok/viewport-sync/synchronizer"
)

// SyncMetrics holds the OpenTelemetry instruments of a synchronizer and its handlers.
// A nil *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	fanouts       metric.Int64Counter
	handlerErrors metric.Int64Counter
	viewports     metric.Int64Gauge
	loadDuration  metric.Float64Histogram
}

// NewSyncMetrics creates the instruments on the given provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	fanouts, err := meter.Int64Counter(
		"viewport_sync_fanouts_total",
		metric.WithDescription("Number of synchronization fan-out rounds"),
		metric.WithUnit("{round}"),
	)
	if err != nil {
		return nil, err
	}

	handlerErrors, err := meter.Int64Counter(
		"viewport_sync_handler_errors_total",
		metric.WithDescription("Number of (source, target) handler invocations that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	viewports, err := meter.Int64Gauge(
		"viewport_sync_viewports",
		metric.WithDescription("Number of viewports registered with a synchronizer"),
		metric.WithUnit("{viewport}"),
	)
	if err != nil {
		return nil, err
	}

	loadDuration, err := meter.Float64Histogram(
		"viewport_sync_image_load_duration_seconds",
		metric.WithDescription("Duration of image loads requested by sync handlers"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		fanouts:       fanouts,
		handlerErrors: handlerErrors,
		viewports:     viewports,
		loadDuration:  loadDuration,
	}, nil
}

// RecordFanout counts one fan-out round of the named synchronizer
func (m *SyncMetrics) RecordFanout(ctx context.Context, synchronizer string, pairs int) {
	if m == nil || m.fanouts == nil {
		return
	}
	m.fanouts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("synchronizer", synchronizer),
		attribute.Int("pairs", pairs),
	))
}

// RecordHandlerError counts a failed handler invocation
func (m *SyncMetrics) RecordHandlerError(ctx context.Context, synchronizer string) {
	if m == nil || m.handlerErrors == nil {
		return
	}
	m.handlerErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("synchronizer", synchronizer)))
}

// RecordViewports records the current source and target counts
func (m *SyncMetrics) RecordViewports(ctx context.Context, synchronizer string, sources, targets int) {
	if m == nil || m.viewports == nil {
		return
	}
	m.viewports.Record(ctx, int64(sources), metric.WithAttributes(
		attribute.String("synchronizer", synchronizer),
		attribute.String("role", "source"),
	))
	m.viewports.Record(ctx, int64(targets), metric.WithAttributes(
		attribute.String("synchronizer", synchronizer),
		attribute.String("role", "target"),
	))
}

// RecordImageLoad records the duration of an image load
func (m *SyncMetrics) RecordImageLoad(ctx context.Context, duration time.Duration, cached, success bool) {
	if m == nil || m.loadDuration == nil {
		return
	}
	m.loadDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.Bool("cached", cached),
		attribute.Bool("success", success),
	))
}
