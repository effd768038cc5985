package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Metrics counts invocation outcomes. A nil *Metrics is valid and records
// nothing, so callers without a meter pipeline can skip wiring it.
type Metrics struct {
	stored   metric.Int64Counter
	failures metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		return nil, errors.New("observability: meter must not be nil")
	}
	stored, err := meter.Int64Counter("messages_stored_total",
		metric.WithDescription("Messages successfully written to the table."))
	if err != nil {
		return nil, fmt.Errorf("observability: create stored counter: %w", err)
	}
	failures, err := meter.Int64Counter("message_failures_total",
		metric.WithDescription("Invocations that failed before or during the write."))
	if err != nil {
		return nil, fmt.Errorf("observability: create failure counter: %w", err)
	}
	return &Metrics{stored: stored, failures: failures}, nil
}

func (m *Metrics) Success(ctx context.Context) {
	if m == nil {
		return
	}
	m.stored.Add(ctx, 1)
}

func (m *Metrics) Failure(ctx context.Context) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1)
}
