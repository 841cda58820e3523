package otel

import (
	"context"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordActivity(ctx context.Context, kind domain.EntryKind) {}

func (e *NoOpExporter) RecordInsightRequest(ctx context.Context, succeeded bool) {}

func (e *NoOpExporter) RecordReminderSent(ctx context.Context) {}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
