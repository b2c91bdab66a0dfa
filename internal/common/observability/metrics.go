package observability

import (
	"context"
	"time"

	"dialogue-actions/internal/common/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	actionCounter otelmetric.Int64Counter
	actionLatency otelmetric.Float64Histogram
}

// New installs a global meter provider exporting through the default
// Prometheus registry. On exporter failure it returns a no-op instance.
func New(serviceName string, log logger.Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("Failed to create Prometheus exporter", map[string]interface{}{"error": err.Error()})
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	actionCounter, _ := meter.Int64Counter(
		"actions.processed",
		otelmetric.WithDescription("Number of actions processed"),
	)

	actionLatency, _ := meter.Float64Histogram(
		"actions.duration",
		otelmetric.WithDescription("Action processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		actionCounter: actionCounter,
		actionLatency: actionLatency,
	}
}

func (o *Observability) RecordActionProcessed(ctx context.Context, action, status string) {
	if o == nil || o.actionCounter == nil {
		return
	}
	o.actionCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordActionDuration(ctx context.Context, action string, duration time.Duration, status string) {
	if o == nil || o.actionLatency == nil {
		return
	}
	o.actionLatency.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
