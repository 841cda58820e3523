package web

import (
	"context"
	"net/http"
	"testing"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

func stateWithLog(log domain.ActivityLog, streak int) func(context.Context, string) (*domain.StateBlob, bool, error) {
	return func(ctx context.Context, userID string) (*domain.StateBlob, bool, error) {
		blob := domain.EmptyState()
		blob.DailyLog = log
		blob.Streak = streak
		return blob, true, nil
	}
}

func TestSummaryWeekly(t *testing.T) {
	env := newTestEnv(t, "2024-01-07")
	env.states.LoadFn = stateWithLog(domain.ActivityLog{
		"2024-01-01": {TasksCompleted: []string{"A", "B"}},
		"2024-01-06": {VideosCompleted: []string{"V"}},
	}, 2)

	rec := env.request(t, http.MethodGet, "/api/summary?view=weekly", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	resp := decodeBody[summaryResponse](t, rec)
	if resp.TotalDays != 7 {
		t.Errorf("Expected 7 total days, got %d", resp.TotalDays)
	}
	if resp.TotalTasks != 2 || resp.TotalVideos != 1 {
		t.Errorf("Expected 2 tasks and 1 video, got %d/%d", resp.TotalTasks, resp.TotalVideos)
	}
	if resp.ActiveDayCount != 2 {
		t.Errorf("Expected 2 active days, got %d", resp.ActiveDayCount)
	}
	// 2024-01-01 is a Monday.
	if resp.BestDayLabel != "Mon" {
		t.Errorf("Expected best day Mon, got %q", resp.BestDayLabel)
	}
	if resp.Streak != 2 {
		t.Errorf("Expected streak 2, got %d", resp.Streak)
	}
}

func TestSummaryDefaultsToWeekly(t *testing.T) {
	env := newTestEnv(t, "2024-01-07")

	rec := env.request(t, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	resp := decodeBody[summaryResponse](t, rec)
	if resp.TotalDays != 7 {
		t.Errorf("Expected weekly default, got %d days", resp.TotalDays)
	}
	if resp.MaxActivity != 1 {
		t.Errorf("Expected max activity floored at 1 for empty log, got %d", resp.MaxActivity)
	}
}

func TestSummaryMonthly(t *testing.T) {
	env := newTestEnv(t, "2024-02-15")

	rec := env.request(t, http.MethodGet, "/api/summary?view=monthly", "")

	resp := decodeBody[summaryResponse](t, rec)
	// Leap February.
	if resp.TotalDays != 29 {
		t.Errorf("Expected 29 days for 2024-02, got %d", resp.TotalDays)
	}
}

func TestSummaryCustom(t *testing.T) {
	env := newTestEnv(t, "2024-03-01")
	env.states.LoadFn = stateWithLog(domain.ActivityLog{
		"2024-01-10": {TasksCompleted: []string{"A"}},
	}, 0)

	rec := env.request(t, http.MethodGet,
		"/api/summary?view=custom&start=2024-01-09&end=2024-01-11", "")

	resp := decodeBody[summaryResponse](t, rec)
	if resp.TotalDays != 3 {
		t.Errorf("Expected 3 days, got %d", resp.TotalDays)
	}
	if resp.BestDayLabel != "Jan 10" {
		t.Errorf("Expected best day Jan 10, got %q", resp.BestDayLabel)
	}
}

func TestSummaryCustomMissingDates(t *testing.T) {
	env := newTestEnv(t, "2024-03-01")

	rec := env.request(t, http.MethodGet, "/api/summary?view=custom&start=2024-01-09", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing end date, got %d", rec.Code)
	}
}

func TestSummaryUnknownView(t *testing.T) {
	env := newTestEnv(t, "2024-03-01")

	rec := env.request(t, http.MethodGet, "/api/summary?view=yearly", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown view, got %d", rec.Code)
	}
}

type calendarResponse struct {
	Month string        `json:"month"`
	Days  []calendarDay `json:"days"`
}

func TestCalendar(t *testing.T) {
	env := newTestEnv(t, "2024-03-01")
	env.states.LoadFn = stateWithLog(domain.ActivityLog{
		"2024-01-05": {TasksCompleted: []string{"A", "B", "C"}},
		"2024-01-20": {VideosCompleted: []string{"V"}},
	}, 0)

	rec := env.request(t, http.MethodGet, "/api/calendar?month=2024-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	resp := decodeBody[calendarResponse](t, rec)
	if resp.Month != "2024-01" {
		t.Errorf("Expected month 2024-01, got %s", resp.Month)
	}
	if len(resp.Days) != 31 {
		t.Fatalf("Expected 31 days, got %d", len(resp.Days))
	}
	if resp.Days[4].HeatLevel != 2 {
		t.Errorf("Expected heat level 2 on Jan 5, got %d", resp.Days[4].HeatLevel)
	}
	if resp.Days[19].HeatLevel != 1 {
		t.Errorf("Expected heat level 1 on Jan 20, got %d", resp.Days[19].HeatLevel)
	}
	if resp.Days[0].HeatLevel != 0 {
		t.Errorf("Expected heat level 0 on Jan 1, got %d", resp.Days[0].HeatLevel)
	}
}

func TestCalendarDefaultsToCurrentMonth(t *testing.T) {
	env := newTestEnv(t, "2024-02-15")

	rec := env.request(t, http.MethodGet, "/api/calendar", "")

	resp := decodeBody[calendarResponse](t, rec)
	if resp.Month != "2024-02" {
		t.Errorf("Expected current month 2024-02, got %s", resp.Month)
	}
	if len(resp.Days) != 29 {
		t.Errorf("Expected 29 days, got %d", len(resp.Days))
	}
}

func TestCalendarBadMonth(t *testing.T) {
	env := newTestEnv(t, "2024-02-15")

	rec := env.request(t, http.MethodGet, "/api/calendar?month=January", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad month, got %d", rec.Code)
	}
}
