package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/emiliopalmerini/preptrack/internal/domain"
	"github.com/emiliopalmerini/preptrack/internal/ports"
)

// handleAISummary relays the requested window's statistics to the
// hosted model. Failures surface as JSON errors and are never retried;
// nothing in the response feeds back into stored state.
func (s *Server) handleAISummary(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if s.insight == nil {
		writeError(w, http.StatusServiceUnavailable, "AI insights are not configured")
		return
	}

	view := r.URL.Query().Get("view")
	if view == "" {
		var body struct {
			View string `json:"view"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		view = body.View
	}

	today := s.clockFor(user)()
	var window domain.AggregationWindow
	switch view {
	case "", "weekly":
		view = "weekly"
		window = domain.WeeklyWindow(today)
	case "monthly":
		window = domain.MonthlyWindow(today)
	default:
		writeError(w, http.StatusBadRequest, "view must be weekly or monthly")
		return
	}

	blob, err := s.loadState(r.Context(), user.ID)
	if err != nil {
		log.Printf("loading state for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	insight, err := s.insight.RequestInsight(r.Context(), ports.InsightRequest{
		WindowLabel: view,
		Stats:       domain.Summarize(blob.DailyLog, window),
		Streak:      blob.Streak,
	})
	s.metrics.RecordInsightRequest(r.Context(), err == nil)
	if err != nil {
		log.Printf("insight request for %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to generate insight")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"insight": insight})
}
