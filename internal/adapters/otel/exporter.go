// Package otel exports service counters to an OTEL Collector. The
// serve command falls back to the no-op exporter when collection is
// not configured.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

const (
	serviceName    = "preptrack"
	serviceVersion = "1.0.0"
)

// Exporter publishes activity, insight and reminder counters.
type Exporter struct {
	provider       *sdkmetric.MeterProvider
	meter          metric.Meter
	activityTotal  metric.Int64Counter
	insightsTotal  metric.Int64Counter
	remindersTotal metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	activityTotal, err := meter.Int64Counter(
		"preptrack_activity_total",
		metric.WithDescription("Total activity entries recorded"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating activity counter: %w", err)
	}

	insightsTotal, err := meter.Int64Counter(
		"preptrack_insight_requests_total",
		metric.WithDescription("Total AI insight requests relayed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating insight counter: %w", err)
	}

	remindersTotal, err := meter.Int64Counter(
		"preptrack_reminders_sent_total",
		metric.WithDescription("Total streak reminder emails sent"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reminder counter: %w", err)
	}

	return &Exporter{
		provider:       provider,
		meter:          meter,
		activityTotal:  activityTotal,
		insightsTotal:  insightsTotal,
		remindersTotal: remindersTotal,
	}, nil
}

// RecordActivity counts one recorded entry, labelled by kind.
func (e *Exporter) RecordActivity(ctx context.Context, kind domain.EntryKind) {
	e.activityTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(kind)),
	))
}

// RecordInsightRequest counts one relay attempt, labelled by outcome.
func (e *Exporter) RecordInsightRequest(ctx context.Context, succeeded bool) {
	status := "ok"
	if !succeeded {
		status = "error"
	}
	e.insightsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordReminderSent counts one delivered reminder email.
func (e *Exporter) RecordReminderSent(ctx context.Context) {
	e.remindersTotal.Add(ctx, 1)
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
