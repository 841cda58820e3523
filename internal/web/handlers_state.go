package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

// loadState fetches the user's document, degrading to an empty state
// for first sessions.
func (s *Server) loadState(ctx context.Context, userID string) (*domain.StateBlob, error) {
	blob, found, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.EmptyState(), nil
	}
	return blob, nil
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	blob, err := s.loadState(r.Context(), user.ID)
	if err != nil {
		log.Printf("loading state for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	blob.NotificationsEnabled = user.NotificationsEnabled

	writeJSON(w, http.StatusOK, blob)
}

func (s *Server) handlePatchState(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var patch domain.StatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "empty patch")
		return
	}

	if err := s.stateRepo.Save(r.Context(), user.ID, patch); err != nil {
		log.Printf("saving state for %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "failed to save state")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}
