package furniture

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/oriumgames/furniture"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// metrics holds the engine's counters. The global provider is a no-op
// until the host configures one.
type metrics struct {
	placed   metric.Int64Counter
	removed  metric.Int64Counter
	rotated  metric.Int64Counter
	failures metric.Int64Counter
	live     metric.Int64ObservableGauge
}

func newMetrics(e *Engine) (*metrics, error) {
	m := meter()
	out := &metrics{}

	var err error
	out.placed, err = m.Int64Counter(
		"furniture.placements.created",
		metric.WithDescription("Total placements created"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating placed counter: %w", err)
	}

	out.removed, err = m.Int64Counter(
		"furniture.placements.removed",
		metric.WithDescription("Total placements removed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating removed counter: %w", err)
	}

	out.rotated, err = m.Int64Counter(
		"furniture.placements.rotated",
		metric.WithDescription("Total placement rotations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rotated counter: %w", err)
	}

	out.failures, err = m.Int64Counter(
		"furniture.operations.failed",
		metric.WithDescription("Total failed furniture operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	out.live, err = m.Int64ObservableGauge(
		"furniture.placements.live",
		metric.WithDescription("Current number of placements"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating live gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(out.live, int64(e.Len()))
			return nil
		},
		out.live,
	)
	if err != nil {
		return nil, fmt.Errorf("registering live callback: %w", err)
	}
	return out, nil
}

func itemAttr(itemID string) metric.AddOption {
	return metric.WithAttributes(attribute.String("item", itemID))
}

func (m *metrics) place(itemID string) {
	m.placed.Add(context.Background(), 1, itemAttr(itemID))
}

func (m *metrics) remove(itemID string) {
	m.removed.Add(context.Background(), 1, itemAttr(itemID))
}

func (m *metrics) rotate(itemID string) {
	m.rotated.Add(context.Background(), 1, itemAttr(itemID))
}

func (m *metrics) fail(op string, err error) {
	m.failures.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("error", reason(err)),
	))
}

// reason maps an error to a low-cardinality attribute value.
func reason(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "other"
}
