// Package otel provides OpenTelemetry instrumentation utilities for the synchronization engine.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for business context used across the application.
// Using shared keys ensures consistent attribute naming in traces.
const (
	AttrSynchronizer   = attribute.Key("sync.name")
	AttrRoundID        = attribute.Key("sync.round_id")
	AttrSourceViewport = attribute.Key("sync.source")
	AttrTargetViewport = attribute.Key("sync.target")
	AttrPairCount      = attribute.Key("sync.pairs")
	AttrSkippedCount   = attribute.Key("sync.skipped")
	AttrImageID        = attribute.Key("image.id")
)

// StartSpan starts a new span if the tracer is non-nil, otherwise returns a no-op span.
// This provides graceful degradation when tracing is disabled.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError records an error on a span and sets the span status to error.
// It safely handles nil spans and nil errors.
// The status description is generic; image identifiers can carry patient data.
// The full error is still available via span events.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
