// Package tracing configures OpenTelemetry tracing for membrane. Lifecycle
// cascades emit spans through the global tracer; when no provider is
// installed the spans are no-ops with negligible overhead.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/zjrosen/membrane"

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active.
	// When false, a no-op tracer is installed.
	Enabled bool `yaml:"enabled"`

	// Exporter selects the export backend.
	// Options: "none", "stdout", "otlp". Default: "stdout".
	Exporter string `yaml:"exporter"`

	// OTLPEndpoint is the OTLP collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317".
	OTLPEndpoint string `yaml:"otlp_endpoint"`

	// SampleRate controls the fraction of traces to sample.
	// 1.0 = all traces. Default: 1.0.
	SampleRate float64 `yaml:"sample_rate"`

	// ServiceName identifies this process in traces.
	// Default: "membrane".
	ServiceName string `yaml:"service_name"`
}

// DefaultConfig returns sensible defaults for development.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Exporter:     "stdout",
		OTLPEndpoint: "localhost:4317",
		SampleRate:   1.0,
		ServiceName:  "membrane",
	}
}

// Provider manages the OpenTelemetry tracer provider.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// NewProvider creates and installs the trace provider as the global
// provider. If tracing is disabled in the config, a no-op provider is
// returned and the global provider is left untouched.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		noopProvider := noop.NewTracerProvider()
		return &Provider{
			tracer:  noopProvider.Tracer("noop"),
			enabled: false,
		}, nil
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.Exporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
	case "otlp":
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exporter, err = otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
	case "none", "":
		// No exporter, but tracing enabled for internal correlation.
		exporter = nil
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "membrane"
	}

	// NewSchemaless avoids schema version conflicts with resource.Default().
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}
	sampler := sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(sampleRate),
	)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(tracerName),
		enabled:  true,
	}, nil
}

// Tracer returns the configured tracer for creating spans. Safe to use even
// when tracing is disabled (no-op tracer).
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled returns whether tracing is enabled.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans and shuts down the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}

// Tracer returns the process-global tracer under the membrane instrumentation
// name. Controllers use this so embedders control exporting by installing
// (or not installing) a global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
