package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

type activityRequest struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

type activityResponse struct {
	Streak         int    `json:"streak"`
	LastActiveDate string `json:"lastActiveDate"`
	Synced         bool   `json:"synced"`
	Error          string `json:"error,omitempty"`
}

func (s *Server) handleRecordActivity(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}

	var entry domain.ActivityEntry
	switch req.Type {
	case "task":
		entry = domain.TaskCompletion(req.Label)
	case "video":
		entry = domain.VideoCompletion(req.Label)
	default:
		writeError(w, http.StatusBadRequest, "type must be task or video")
		return
	}

	blob, err := s.loadState(r.Context(), user.ID)
	if err != nil {
		log.Printf("loading state for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	today := s.clockFor(user)()
	blob.DailyLog.Record(today, entry)
	streak := blob.StreakState()
	streak.Touch(today)
	blob.SetStreakState(streak)

	s.metrics.RecordActivity(r.Context(), entry.Kind)

	s.persistActivity(w, r, user, blob)
}

// persistActivity saves the log and streak fields and reports the
// updated streak. A failed save still returns the in-memory result;
// the client keeps working unsynced.
func (s *Server) persistActivity(w http.ResponseWriter, r *http.Request, user domain.User, blob *domain.StateBlob) {
	resp := activityResponse{
		Streak:         blob.Streak,
		LastActiveDate: blob.LastActiveDate,
		Synced:         true,
	}

	patch := domain.StatePatch{
		DailyLog:       &blob.DailyLog,
		Streak:         &blob.Streak,
		LastActiveDate: &blob.LastActiveDate,
	}
	if err := s.stateRepo.Save(r.Context(), user.ID, patch); err != nil {
		log.Printf("saving activity for %s: %v", user.ID, err)
		resp.Synced = false
		resp.Error = "failed to save state"
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleResetTasks logs every completed task as activity, then clears
// the whole task list (complete-and-clear model).
func (s *Server) handleResetTasks(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	blob, err := s.loadState(r.Context(), user.ID)
	if err != nil {
		log.Printf("loading state for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	today := s.clockFor(user)()
	logged := 0
	for _, task := range domain.CompletedTasks(blob.Tasks) {
		blob.DailyLog.Record(today, domain.TaskCompletion(task.Text))
		s.metrics.RecordActivity(r.Context(), domain.EntryTask)
		logged++
	}
	if logged > 0 {
		streak := blob.StreakState()
		streak.Touch(today)
		blob.SetStreakState(streak)
	}
	blob.Tasks = []domain.Task{}

	resp := activityResponse{
		Streak:         blob.Streak,
		LastActiveDate: blob.LastActiveDate,
		Synced:         true,
	}
	patch := domain.StatePatch{
		Tasks:          &blob.Tasks,
		DailyLog:       &blob.DailyLog,
		Streak:         &blob.Streak,
		LastActiveDate: &blob.LastActiveDate,
	}
	if err := s.stateRepo.Save(r.Context(), user.ID, patch); err != nil {
		log.Printf("resetting tasks for %s: %v", user.ID, err)
		resp.Synced = false
		resp.Error = "failed to save state"
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleResetVideos logs every video past the completion threshold and
// removes it, keeping in-progress videos in place.
func (s *Server) handleResetVideos(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	blob, err := s.loadState(r.Context(), user.ID)
	if err != nil {
		log.Printf("loading state for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	today := s.clockFor(user)()
	var remaining []domain.Video
	logged := 0
	for _, video := range blob.Videos {
		if !video.IsCompleted() {
			remaining = append(remaining, video)
			continue
		}
		blob.DailyLog.Record(today, domain.VideoCompletion(video.Title))
		s.metrics.RecordActivity(r.Context(), domain.EntryVideo)
		logged++
	}
	if logged > 0 {
		streak := blob.StreakState()
		streak.Touch(today)
		blob.SetStreakState(streak)
	}
	if remaining == nil {
		remaining = []domain.Video{}
	}
	blob.Videos = remaining

	resp := activityResponse{
		Streak:         blob.Streak,
		LastActiveDate: blob.LastActiveDate,
		Synced:         true,
	}
	patch := domain.StatePatch{
		Videos:         &blob.Videos,
		DailyLog:       &blob.DailyLog,
		Streak:         &blob.Streak,
		LastActiveDate: &blob.LastActiveDate,
	}
	if err := s.stateRepo.Save(r.Context(), user.ID, patch); err != nil {
		log.Printf("resetting videos for %s: %v", user.ID, err)
		resp.Synced = false
		resp.Error = "failed to save state"
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDeleteVideo removes one video. A video past the completion
// threshold is logged as activity on its way out.
func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	videoID := r.PathValue("id")

	blob, err := s.loadState(r.Context(), user.ID)
	if err != nil {
		log.Printf("loading state for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	idx := -1
	for i, video := range blob.Videos {
		if video.ID == videoID {
			idx = i
			break
		}
	}
	if idx == -1 {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}

	video := blob.Videos[idx]
	blob.Videos = append(blob.Videos[:idx], blob.Videos[idx+1:]...)

	patch := domain.StatePatch{Videos: &blob.Videos}
	if video.IsCompleted() {
		today := s.clockFor(user)()
		blob.DailyLog.Record(today, domain.VideoCompletion(video.Title))
		streak := blob.StreakState()
		streak.Touch(today)
		blob.SetStreakState(streak)
		s.metrics.RecordActivity(r.Context(), domain.EntryVideo)

		patch.DailyLog = &blob.DailyLog
		patch.Streak = &blob.Streak
		patch.LastActiveDate = &blob.LastActiveDate
	}

	resp := activityResponse{
		Streak:         blob.Streak,
		LastActiveDate: blob.LastActiveDate,
		Synced:         true,
	}
	if err := s.stateRepo.Save(r.Context(), user.ID, patch); err != nil {
		log.Printf("deleting video for %s: %v", user.ID, err)
		resp.Synced = false
		resp.Error = "failed to save state"
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
