package domain

// StateBlob is the combined per-user document persisted by the sync
// gateway. Field names match the stored JSON document. A missing or
// malformed document degrades to the zero value — empty log, zero
// streak — never a hard failure.
type StateBlob struct {
	Tasks                []Task      `json:"tasks"`
	Videos               []Video     `json:"videos"`
	DailyLog             ActivityLog `json:"dailyLog"`
	Streak               int         `json:"streak"`
	LastActiveDate       string      `json:"lastActiveDate"`
	NotificationsEnabled bool        `json:"notificationsEnabled"`
	Snippets             []Snippet   `json:"snippets"`
}

// EmptyState returns a safe default for first sessions and unreadable
// documents.
func EmptyState() *StateBlob {
	return &StateBlob{DailyLog: ActivityLog{}}
}

// StreakState extracts the streak pair in normalized form.
func (b *StateBlob) StreakState() StreakState {
	state := StreakState{Current: b.Streak}
	if key, ok := ParseDayKey(b.LastActiveDate); ok {
		state.LastActive = key
	}
	return state
}

// SetStreakState writes the streak pair back in canonical form.
func (b *StateBlob) SetStreakState(s StreakState) {
	b.Streak = s.Current
	b.LastActiveDate = s.LastActive.String()
}

// Normalize repairs a freshly-loaded blob: nil maps become empty,
// legacy day keys are renormalized, negative streaks clamp to zero.
func (b *StateBlob) Normalize() {
	if b.DailyLog == nil {
		b.DailyLog = ActivityLog{}
	} else {
		b.DailyLog = b.DailyLog.Normalize()
	}
	if b.Streak < 0 {
		b.Streak = 0
	}
	if key, ok := ParseDayKey(b.LastActiveDate); ok {
		b.LastActiveDate = key.String()
	} else {
		b.LastActiveDate = ""
		b.Streak = 0
	}
}

// StatePatch carries the top-level fields to persist. Nil fields are
// left untouched in the stored document; supplied array fields are
// overwritten wholesale, never diffed (single-writer model,
// last-writer-wins per field).
type StatePatch struct {
	Tasks                *[]Task      `json:"tasks,omitempty"`
	Videos               *[]Video     `json:"videos,omitempty"`
	DailyLog             *ActivityLog `json:"dailyLog,omitempty"`
	Streak               *int         `json:"streak,omitempty"`
	LastActiveDate       *string      `json:"lastActiveDate,omitempty"`
	NotificationsEnabled *bool        `json:"notificationsEnabled,omitempty"`
	Snippets             *[]Snippet   `json:"snippets,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p StatePatch) IsEmpty() bool {
	return p.Tasks == nil && p.Videos == nil && p.DailyLog == nil &&
		p.Streak == nil && p.LastActiveDate == nil &&
		p.NotificationsEnabled == nil && p.Snippets == nil
}

// Apply merges the patch into blob in memory, mirroring what Save does
// to the stored document.
func (p StatePatch) Apply(b *StateBlob) {
	if p.Tasks != nil {
		b.Tasks = *p.Tasks
	}
	if p.Videos != nil {
		b.Videos = *p.Videos
	}
	if p.DailyLog != nil {
		b.DailyLog = *p.DailyLog
	}
	if p.Streak != nil {
		b.Streak = *p.Streak
	}
	if p.LastActiveDate != nil {
		b.LastActiveDate = *p.LastActiveDate
	}
	if p.NotificationsEnabled != nil {
		b.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.Snippets != nil {
		b.Snippets = *p.Snippets
	}
}
