package domain

import (
	"strconv"
	"time"
)

// LabelScheme selects how window days are labelled on charts.
type LabelScheme int

const (
	// LabelWeekdayShort renders "Mon", "Tue", ... (weekly view).
	LabelWeekdayShort LabelScheme = iota
	// LabelDayOfMonth renders "1".."31" (monthly view).
	LabelDayOfMonth
	// LabelShortDate renders "Jan 2" (custom ranges).
	LabelShortDate
)

// maxCustomWindowDays bounds chart density for custom ranges; longer
// ranges enumerate only their first 31 days.
const maxCustomWindowDays = 31

// AggregationWindow is a contiguous inclusive day range plus a label
// scheme. Build via WeeklyWindow, MonthlyWindow or CustomWindow.
type AggregationWindow struct {
	Start  DayKey
	End    DayKey
	Labels LabelScheme
}

// WeeklyWindow covers the last 7 days ending today.
func WeeklyWindow(today DayKey) AggregationWindow {
	return AggregationWindow{Start: today.AddDays(-6), End: today, Labels: LabelWeekdayShort}
}

// MonthlyWindow covers the calendar month containing today.
func MonthlyWindow(today DayKey) AggregationWindow {
	t := today.Time(time.UTC)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return AggregationWindow{
		Start:  NewDayKey(first, time.UTC),
		End:    NewDayKey(last, time.UTC),
		Labels: LabelDayOfMonth,
	}
}

// CustomWindow covers [start, end] with short-date labels. The day
// enumeration is capped at 31 days.
func CustomWindow(start, end DayKey) AggregationWindow {
	return AggregationWindow{Start: start, End: end, Labels: LabelShortDate}
}

// Days enumerates the window's day sequence, inclusive of both
// endpoints. Custom windows are truncated to the first 31 days.
func (w AggregationWindow) Days() []DayKey {
	start := w.Start.Time(time.UTC)
	end := w.End.Time(time.UTC)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil
	}

	var days []DayKey
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, NewDayKey(cursor, time.UTC))
		if w.Labels == LabelShortDate && len(days) == maxCustomWindowDays {
			break
		}
	}
	return days
}

// Label renders one day per the window's scheme.
func (w AggregationWindow) Label(day DayKey) string {
	t := day.Time(time.UTC)
	switch w.Labels {
	case LabelWeekdayShort:
		return t.Format("Mon")
	case LabelDayOfMonth:
		return strconv.Itoa(t.Day())
	default:
		return t.Format("Jan 2")
	}
}

// AggregationResult is the derived statistics view over one window.
// Recomputed on demand, never persisted.
type AggregationResult struct {
	ChartLabels    []string `json:"chartLabels"`
	PerDayCounts   []int    `json:"perDayCounts"`
	TotalTasks     int      `json:"totalTasks"`
	TotalVideos    int      `json:"totalVideos"`
	ActiveDayCount int      `json:"activeDays"`
	TotalDays      int      `json:"totalDays"`
	BestDayLabel   string   `json:"bestDay"`
	TopTaskLabels  []string `json:"topTasks"`
	TopVideoLabels []string `json:"topVideos"`
	MaxActivity    int      `json:"maxActivity"`
}

// Summarize projects log onto window. Pure and total: an empty or
// fully-inactive window yields zero counts, a best day of the first
// label, and MaxActivity floored at 1 so chart normalization never
// divides by zero.
func Summarize(log ActivityLog, window AggregationWindow) AggregationResult {
	days := window.Days()

	result := AggregationResult{
		ChartLabels:  make([]string, len(days)),
		PerDayCounts: make([]int, len(days)),
		TotalDays:    len(days),
		MaxActivity:  1,
	}

	var allTasks, allVideos []string
	bestIdx := 0
	for i, day := range days {
		dayLog := log.Get(day)
		count := dayLog.Count()

		result.ChartLabels[i] = window.Label(day)
		result.PerDayCounts[i] = count
		result.TotalTasks += len(dayLog.TasksCompleted)
		result.TotalVideos += len(dayLog.VideosCompleted)
		if count > 0 {
			result.ActiveDayCount++
		}
		// first max wins
		if count > result.PerDayCounts[bestIdx] {
			bestIdx = i
		}
		if count > result.MaxActivity {
			result.MaxActivity = count
		}

		allTasks = append(allTasks, dayLog.TasksCompleted...)
		allVideos = append(allVideos, dayLog.VideosCompleted...)
	}

	if len(days) > 0 {
		result.BestDayLabel = result.ChartLabels[bestIdx]
	}
	result.TopTaskLabels = dedupeTop(allTasks, 5)
	result.TopVideoLabels = dedupeTop(allVideos, 5)

	return result
}

// dedupeTop keeps first-seen order, exact label equality, capped at n.
func dedupeTop(labels []string, n int) []string {
	seen := make(map[string]struct{}, len(labels))
	var out []string
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
		if len(out) == n {
			break
		}
	}
	return out
}
