package web

import (
	"log"
	"net/http"
)

func (s *Server) handleContests(w http.ResponseWriter, r *http.Request) {
	payload, err := s.contests.Contests(r.Context())
	if err != nil {
		log.Printf("fetching contests: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch Codeforces data")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (s *Server) handleContestUser(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")

	payload, err := s.contests.UserInfo(r.Context(), handle)
	if err != nil {
		log.Printf("fetching Codeforces user %s: %v", handle, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch Codeforces user")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}
