package web

import (
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

type dashboardResponse struct {
	State    *domain.StateBlob        `json:"state"`
	Summary  domain.AggregationResult `json:"summary"`
	Contests json.RawMessage          `json:"contests"`
}

// handleDashboard assembles everything the landing page needs in one
// round trip. State and contests are fetched concurrently; a contest
// fetch failure degrades to an empty list, never fails the page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	ctx := r.Context()

	// Results collected by each goroutine (no mutex needed — each writes to its own var)
	var (
		blob     *domain.StateBlob
		contests json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		blob, err = s.loadState(gctx, user.ID)
		return err
	})

	g.Go(func() error {
		payload, err := s.contests.Contests(gctx)
		if err != nil {
			log.Printf("fetching contests for dashboard: %v", err)
			return nil
		}
		contests = payload
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("loading dashboard for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	blob.NotificationsEnabled = user.NotificationsEnabled
	if contests == nil {
		contests = json.RawMessage(`{"status":"FAILED","result":[]}`)
	}

	today := s.clockFor(user)()
	writeJSON(w, http.StatusOK, dashboardResponse{
		State:    blob,
		Summary:  domain.Summarize(blob.DailyLog, domain.WeeklyWindow(today)),
		Contests: contests,
	})
}
