package calculation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records calculation metrics.
// Use NewMetricsRecorder for OpenTelemetry metrics or NoopMetrics when
// disabled.
type MetricsRecorder interface {
	// RecordCalculation records one call to Calculate with its duration and
	// error, if any.
	RecordCalculation(ctx context.Context, duration time.Duration, err error)
}

// NoopMetrics is a MetricsRecorder that records nothing.
type NoopMetrics struct{}

// RecordCalculation does nothing.
func (NoopMetrics) RecordCalculation(context.Context, time.Duration, error) {}

type otelMetrics struct {
	calculations metric.Int64Counter
	failures     metric.Int64Counter
	latency      metric.Float64Histogram
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter(instrumentationName)

	calculations, err := meter.Int64Counter("calculation.calculations",
		metric.WithDescription("Number of expressions calculated"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("calculation.errors",
		metric.WithDescription("Number of expressions that could not be evaluated"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("calculation.latency_ms",
		metric.WithDescription("Calculation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		calculations: calculations,
		failures:     failures,
		latency:      latency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses the global
// OpenTelemetry meter provider. Configure the provider before calling this
// function. If the instruments cannot be created, the result is NoopMetrics.
func NewMetricsRecorder() MetricsRecorder {
	m, err := newOtelMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordCalculation(ctx context.Context, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.calculations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.latency.Record(ctx, millis(duration), metric.WithAttributes(attrs...))
	if err != nil {
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", errorKind(err))))
	}
}
