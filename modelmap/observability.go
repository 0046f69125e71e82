package modelmap

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// Instrumentation library name
	instrumentationName    = "github.com/goliatone/go-identity-map/modelmap"
	instrumentationVersion = "0.1.0"
)

// ObservabilityConfig controls telemetry collection for a generated type.
type ObservabilityConfig struct {
	// EnableMetrics enables OpenTelemetry metrics collection. Metrics go to
	// the global meter provider, which is a no-op unless an SDK is installed.
	EnableMetrics bool

	// MetricAttributes are additional attributes to add to all metrics.
	MetricAttributes []attribute.KeyValue
}

// DefaultObservabilityConfig returns the default observability configuration.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		EnableMetrics: true,
		MetricAttributes: []attribute.KeyValue{
			attribute.String("cache.kind", "identity-map"),
		},
	}
}

// instruments holds the OpenTelemetry instruments for one generated type.
type instruments struct {
	enabled bool
	attrs   metric.MeasurementOption

	hits          metric.Int64Counter
	misses        metric.Int64Counter
	registrations metric.Int64Counter
	collisions    metric.Int64Counter
	wipes         metric.Int64Counter
	entries       metric.Int64ObservableGauge
}

// newInstruments initializes the instruments for a type. The live-entry count
// is observed through lenFn so displacements and concurrent removals never
// drift the gauge.
func newInstruments(cfg *ObservabilityConfig, typeName string, lenFn func() int) *instruments {
	if cfg == nil {
		cfg = DefaultObservabilityConfig()
	}
	if !cfg.EnableMetrics {
		return &instruments{}
	}

	meter := otel.Meter(instrumentationName, metric.WithInstrumentationVersion(instrumentationVersion))

	attrs := append([]attribute.KeyValue{attribute.String("model.type", typeName)}, cfg.MetricAttributes...)
	in := &instruments{
		enabled: true,
		attrs:   metric.WithAttributes(attrs...),
	}

	var err error

	in.hits, err = meter.Int64Counter(
		"model.cache.hits",
		metric.WithDescription("Constructions answered by a cached instance"),
	)
	if err != nil {
		otel.Handle(err)
	}

	in.misses, err = meter.Int64Counter(
		"model.cache.misses",
		metric.WithDescription("Constructions that built a new instance"),
	)
	if err != nil {
		otel.Handle(err)
	}

	in.registrations, err = meter.Int64Counter(
		"model.cache.registrations",
		metric.WithDescription("Instances registered under an id"),
	)
	if err != nil {
		otel.Handle(err)
	}

	in.collisions, err = meter.Int64Counter(
		"model.cache.collisions",
		metric.WithDescription("Id changes refused because the key was occupied"),
	)
	if err != nil {
		otel.Handle(err)
	}

	in.wipes, err = meter.Int64Counter(
		"model.cache.wipes",
		metric.WithDescription("Entries removed through the wipe operation"),
	)
	if err != nil {
		otel.Handle(err)
	}

	in.entries, err = meter.Int64ObservableGauge(
		"model.cache.entries",
		metric.WithDescription("Live registered instances"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(lenFn()), in.attrs)
			return nil
		}),
	)
	if err != nil {
		otel.Handle(err)
	}

	return in
}

func (in *instruments) hit() {
	if in.enabled {
		in.hits.Add(context.Background(), 1, in.attrs)
	}
}

func (in *instruments) miss() {
	if in.enabled {
		in.misses.Add(context.Background(), 1, in.attrs)
	}
}

func (in *instruments) registered() {
	if in.enabled {
		in.registrations.Add(context.Background(), 1, in.attrs)
	}
}

func (in *instruments) collision() {
	if in.enabled {
		in.collisions.Add(context.Background(), 1, in.attrs)
	}
}

func (in *instruments) wiped() {
	if in.enabled {
		in.wipes.Add(context.Background(), 1, in.attrs)
	}
}
