package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys. These define the semantic conventions for spans
// emitted by the component runtime.
const (
	AttrComponentID   = "component.id"
	AttrComponentName = "component.name"
	AttrInterfaceName = "interface.name"
	AttrBindingName   = "binding.name"
	AttrStatus        = "lifecycle.status"
)

// Span names emitted by the lifecycle controller.
const (
	SpanStart = "component.start"
	SpanStop  = "component.stop"
)

// StartSpan starts a span on the global membrane tracer.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err (if any) on the span and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
