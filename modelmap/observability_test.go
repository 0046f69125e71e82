package modelmap

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/goliatone/go-identity-map/model"
)

func TestInstruments_DefaultConfig(t *testing.T) {
	in := newInstruments(nil, "user", func() int { return 0 })
	if !in.enabled {
		t.Fatal("nil config should enable metrics with defaults")
	}

	// The global meter provider is a no-op unless an SDK is installed;
	// recording must still be safe.
	in.hit()
	in.miss()
	in.registered()
	in.collision()
	in.wiped()
}

func TestInstruments_Disabled(t *testing.T) {
	in := newInstruments(&ObservabilityConfig{EnableMetrics: false}, "user", func() int { return 0 })
	if in.enabled {
		t.Fatal("metrics should be disabled")
	}

	// No instruments were created; recording must be a no-op, not a panic.
	in.hit()
	in.miss()
	in.registered()
	in.collision()
	in.wiped()
}

func TestType_WithObservability(t *testing.T) {
	users := newUserType(t, WithObservability(&ObservabilityConfig{
		EnableMetrics:    true,
		MetricAttributes: []attribute.KeyValue{attribute.String("env", "test")},
	}))

	u1 := users.Create(model.Attributes{"id": 1})
	u2 := users.Create(model.Attributes{"id": 1})
	if u1 != u2 {
		t.Error("instrumented type should still deduplicate")
	}
	if err := users.Wipe(1); err != nil {
		t.Errorf("Wipe() error: %v", err)
	}
}
