package ports

import (
	"context"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

// InsightRequest packages aggregation output for the language model.
// Purely advisory: nothing in the response ever feeds back into stored
// state.
type InsightRequest struct {
	WindowLabel string
	Stats       domain.AggregationResult
	Streak      int
}

// InsightRequester relays a statistics summary to a hosted model and
// returns free text. Failures surface to the caller and are never
// retried automatically.
type InsightRequester interface {
	RequestInsight(ctx context.Context, req InsightRequest) (string, error)
}
