package domain

// StreakState tracks consecutive active days. Current is 0 only when
// LastActive is empty or more than one day before "today" at the last
// evaluation. Owned by the session doing the logging; persisted
// alongside the activity log.
type StreakState struct {
	Current    int
	LastActive DayKey
}

// Touch credits today's activity. Same-day calls are no-ops, so call
// sites may invoke it once per completed item without double counting.
// A missed day is not rolled back at midnight; the gap is observed
// lazily on the next Touch.
func (s *StreakState) Touch(today DayKey) {
	switch s.LastActive {
	case today:
		// already credited today
	case today.Yesterday():
		s.Current++
		s.LastActive = today
	default:
		s.Current = 1
		s.LastActive = today
	}
}

// ActiveToday reports whether the streak was already credited today.
func (s StreakState) ActiveToday(today DayKey) bool {
	return s.LastActive == today
}
