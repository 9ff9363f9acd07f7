// Package observability exposes OpenTelemetry metrics through the Prometheus
// exporter. The /metrics endpoint served by the worker manager picks these up
// through the default registry.
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	jobsReceived  otelmetric.Int64Counter
	jobDuration   otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	jobsReceived, _ := meter.Int64Counter(
		"workflow.jobs.received",
		otelmetric.WithDescription("Jobs dispatched to a worker, by task type"),
	)

	jobDuration, _ := meter.Float64Histogram(
		"workflow.jobs.handler.duration",
		otelmetric.WithDescription("Handler wall time per job, by task type"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		jobsReceived:  jobsReceived,
		jobDuration:   jobDuration,
	}
}

// RecordJobReceived counts a job handed to the task type's handler.
func (o *Observability) RecordJobReceived(ctx context.Context, taskType string) {
	if o.jobsReceived != nil {
		o.jobsReceived.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("taskType", taskType),
		))
	}
}

// RecordHandlerDuration records how long the handler held the job.
func (o *Observability) RecordHandlerDuration(ctx context.Context, taskType string, duration time.Duration) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("taskType", taskType),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
