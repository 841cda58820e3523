package domain

// EntryKind distinguishes the two kinds of completion a day can record.
type EntryKind string

const (
	EntryTask  EntryKind = "task"
	EntryVideo EntryKind = "video"
)

// ActivityEntry is a single recorded completion. Immutable once recorded.
type ActivityEntry struct {
	Kind  EntryKind
	Label string
}

// TaskCompletion builds a task entry.
func TaskCompletion(label string) ActivityEntry {
	return ActivityEntry{Kind: EntryTask, Label: label}
}

// VideoCompletion builds a video entry.
func VideoCompletion(label string) ActivityEntry {
	return ActivityEntry{Kind: EntryVideo, Label: label}
}

// DayLog holds everything completed on one calendar day.
// Insertion order is preserved for display; duplicates are valid
// (completing the same-titled task twice a day is two entries).
type DayLog struct {
	TasksCompleted  []string `json:"tasksCompleted"`
	VideosCompleted []string `json:"videosCompleted"`
}

// Count returns the total number of entries in the day.
func (d DayLog) Count() int {
	return len(d.TasksCompleted) + len(d.VideosCompleted)
}

// IsEmpty reports whether nothing was recorded that day.
func (d DayLog) IsEmpty() bool {
	return d.Count() == 0
}

// ActivityLog maps day keys to day logs. A key is present iff at least
// one entry has been recorded for that day.
type ActivityLog map[DayKey]DayLog

// Record appends entry to the correct sub-list for day, creating the
// DayLog if absent. Never fails.
func (l ActivityLog) Record(day DayKey, entry ActivityEntry) {
	log := l[day]
	switch entry.Kind {
	case EntryVideo:
		log.VideosCompleted = append(log.VideosCompleted, entry.Label)
	default:
		log.TasksCompleted = append(log.TasksCompleted, entry.Label)
	}
	l[day] = log
}

// Get returns the DayLog for day, or a zero DayLog when absent.
func (l ActivityLog) Get(day DayKey) DayLog {
	return l[day]
}

// HeatLevel buckets a day's activity volume for calendar shading:
// 0 entries -> 0, 1-2 -> 1, 3-5 -> 2, 6+ -> 3.
func (l ActivityLog) HeatLevel(day DayKey) int {
	switch n := l[day].Count(); {
	case n == 0:
		return 0
	case n <= 2:
		return 1
	case n <= 5:
		return 2
	default:
		return 3
	}
}

// Normalize rewrites keys into canonical form, dropping unparseable
// keys and empty day logs. Logs from older clients used locale date
// strings; renormalizing on load keeps calendar identity intact.
func (l ActivityLog) Normalize() ActivityLog {
	out := make(ActivityLog, len(l))
	for key, log := range l {
		if log.IsEmpty() {
			continue
		}
		norm, ok := ParseDayKey(string(key))
		if !ok {
			continue
		}
		merged := out[norm]
		merged.TasksCompleted = append(merged.TasksCompleted, log.TasksCompleted...)
		merged.VideosCompleted = append(merged.VideosCompleted, log.VideosCompleted...)
		out[norm] = merged
	}
	return out
}
