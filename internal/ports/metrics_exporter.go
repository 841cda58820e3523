package ports

import (
	"context"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

// MetricsExporter publishes service counters. Implementations must be
// safe to call from request handlers; a no-op implementation is used
// when no collector is configured.
type MetricsExporter interface {
	RecordActivity(ctx context.Context, kind domain.EntryKind)
	RecordInsightRequest(ctx context.Context, succeeded bool)
	RecordReminderSent(ctx context.Context)
	Close(ctx context.Context) error
}
