package web

import (
	"encoding/json"
	"log"
	"net/http"
)

// handleSendNotificationEmail sends the welcome email. Delivery
// failures are reported in the body rather than failing the request,
// matching what the frontend expects.
func (s *Server) handleSendNotificationEmail(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if s.mailer == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"emailSuccess": false,
			"error":        "email is not configured",
		})
		return
	}

	if err := s.mailer.SendWelcome(r.Context(), user.Email, user.Name()); err != nil {
		log.Printf("welcome email to %s: %v", user.Email, err)
		writeJSON(w, http.StatusOK, map[string]any{
			"emailSuccess": false,
			"error":        err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"emailSuccess": true})
}

type preferenceRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleUpdateNotificationPreference(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.userRepo.SetNotificationsEnabled(r.Context(), user.ID, req.Enabled); err != nil {
		log.Printf("updating notification preference for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to update preference")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"notificationsEnabled": req.Enabled})
}
