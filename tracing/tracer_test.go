package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// === Helper Functions ===

// installTestProvider installs an in-memory exporter as the global provider
// and restores the previous provider on cleanup.
func installTestProvider(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = provider.Shutdown(context.Background())
	})
	return exporter
}

// === Unit Tests: NewProvider ===

func TestNewProvider_DisabledReturnsNoop(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_RejectsUnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "carrier-pigeon"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported exporter")
}

func TestNewProvider_NoneExporterStillTraces(t *testing.T) {
	p, err := NewProvider(Config{Enabled: true, Exporter: "none"})
	require.NoError(t, err)
	require.True(t, p.Enabled())
	require.NoError(t, p.Shutdown(context.Background()))
}

// === Unit Tests: spans ===

func TestStartSpan_RecordsAttributes(t *testing.T) {
	exporter := installTestProvider(t)

	_, span := StartSpan(context.Background(), SpanStart,
		attribute.String(AttrComponentName, "root"))
	EndSpan(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, SpanStart, spans[0].Name)
	require.Equal(t, codes.Ok, spans[0].Status.Code)
	require.Contains(t, spans[0].Attributes,
		attribute.String(AttrComponentName, "root"))
}

func TestEndSpan_RecordsError(t *testing.T) {
	exporter := installTestProvider(t)

	_, span := StartSpan(context.Background(), SpanStop)
	EndSpan(span, errors.New("cascade failed"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status.Code)
	require.Equal(t, "cascade failed", spans[0].Status.Description)
	require.NotEmpty(t, spans[0].Events) // RecordError adds an exception event
}
