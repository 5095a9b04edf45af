package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BootstrapMetrics holds the metric instruments for the backend bootstrap
// path.
type BootstrapMetrics struct {
	startTotal    metric.Int64Counter
	startDuration metric.Float64Histogram
	probeAttempts metric.Int64Counter
}

// NewBootstrapMetrics creates the bootstrap instruments on the global meter.
// Safe to use even when telemetry was never initialized: the instruments
// are no-ops without a provider.
func NewBootstrapMetrics() (*BootstrapMetrics, error) {
	meter := otel.Meter("github.com/seekjob/desktophost/bootstrap")

	startTotal, err := meter.Int64Counter("bootstrap.start.total",
		metric.WithDescription("Backend start attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bootstrap.start.total counter: %w", err)
	}

	startDuration, err := meter.Float64Histogram("bootstrap.start.duration",
		metric.WithDescription("Duration of backend start attempts in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bootstrap.start.duration histogram: %w", err)
	}

	probeAttempts, err := meter.Int64Counter("bootstrap.probe.attempts",
		metric.WithDescription("Health probe attempts by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bootstrap.probe.attempts counter: %w", err)
	}

	return &BootstrapMetrics{
		startTotal:    startTotal,
		startDuration: startDuration,
		probeAttempts: probeAttempts,
	}, nil
}

// RecordStart records the outcome of a backend start attempt.
func (m *BootstrapMetrics) RecordStart(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.startTotal.Add(ctx, 1, attrs)
	m.startDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordProbe records a single health probe attempt.
func (m *BootstrapMetrics) RecordProbe(ctx context.Context, ok bool) {
	m.probeAttempts.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", ok)))
}
