package web

import (
	"log"
	"net/http"
	"time"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

type summaryResponse struct {
	domain.AggregationResult
	Streak int `json:"streak"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	today := s.clockFor(user)()
	var window domain.AggregationWindow
	switch view := r.URL.Query().Get("view"); view {
	case "", "weekly":
		window = domain.WeeklyWindow(today)
	case "monthly":
		window = domain.MonthlyWindow(today)
	case "custom":
		start, okStart := domain.ParseDayKey(r.URL.Query().Get("start"))
		end, okEnd := domain.ParseDayKey(r.URL.Query().Get("end"))
		if !okStart || !okEnd {
			writeError(w, http.StatusBadRequest, "custom view needs start and end dates")
			return
		}
		window = domain.CustomWindow(start, end)
	default:
		writeError(w, http.StatusBadRequest, "view must be weekly, monthly or custom")
		return
	}

	blob, err := s.loadState(r.Context(), user.ID)
	if err != nil {
		log.Printf("loading state for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		AggregationResult: domain.Summarize(blob.DailyLog, window),
		Streak:            blob.Streak,
	})
}

type calendarDay struct {
	Date      string `json:"date"`
	HeatLevel int    `json:"heatLevel"`
	Tasks     int    `json:"tasks"`
	Videos    int    `json:"videos"`
}

// handleCalendar returns per-day heat levels for one calendar month.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	month := r.URL.Query().Get("month")
	var first time.Time
	if month == "" {
		first = s.clockFor(user)().Time(time.UTC)
		first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		var err error
		first, err = time.Parse("2006-01", month)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
	}

	blob, err := s.loadState(r.Context(), user.ID)
	if err != nil {
		log.Printf("loading state for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	last := first.AddDate(0, 1, -1)
	days := make([]calendarDay, 0, last.Day())
	for cursor := first; !cursor.After(last); cursor = cursor.AddDate(0, 0, 1) {
		day := domain.NewDayKey(cursor, time.UTC)
		dayLog := blob.DailyLog.Get(day)
		days = append(days, calendarDay{
			Date:      day.String(),
			HeatLevel: blob.DailyLog.HeatLevel(day),
			Tasks:     len(dayLog.TasksCompleted),
			Videos:    len(dayLog.VideosCompleted),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month": first.Format("2006-01"),
		"days":  days,
	})
}
