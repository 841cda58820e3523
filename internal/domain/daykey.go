package domain

import "time"

// DayKey identifies one calendar day in the user's time zone,
// in canonical "2006-01-02" form.
type DayKey string

const dayKeyLayout = "2006-01-02"

// legacyDayKeyLayout matches the JS Date.toDateString() keys found in
// documents written by older clients, e.g. "Mon Jan 02 2006".
const legacyDayKeyLayout = "Mon Jan 02 2006"

// NewDayKey returns the DayKey for t in the given location.
func NewDayKey(t time.Time, loc *time.Location) DayKey {
	if loc == nil {
		loc = time.UTC
	}
	return DayKey(t.In(loc).Format(dayKeyLayout))
}

// ParseDayKey parses a canonical or legacy day key. Unparseable input
// returns ok=false; callers should drop the entry rather than fail.
func ParseDayKey(s string) (DayKey, bool) {
	if t, err := time.Parse(dayKeyLayout, s); err == nil {
		return DayKey(t.Format(dayKeyLayout)), true
	}
	if t, err := time.Parse(legacyDayKeyLayout, s); err == nil {
		return DayKey(t.Format(dayKeyLayout)), true
	}
	return "", false
}

// Time returns the midnight instant of the day in loc.
// Zero time for an invalid key.
func (d DayKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dayKeyLayout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the key n calendar days after d.
func (d DayKey) AddDays(n int) DayKey {
	t := d.Time(time.UTC)
	if t.IsZero() {
		return d
	}
	return DayKey(t.AddDate(0, 0, n).Format(dayKeyLayout))
}

// Yesterday returns the key of the previous calendar day.
func (d DayKey) Yesterday() DayKey {
	return d.AddDays(-1)
}

func (d DayKey) IsZero() bool {
	return d == ""
}

func (d DayKey) String() string {
	return string(d)
}

// Clock supplies the current calendar day. Injected so streak and
// aggregation logic stay deterministic under test.
type Clock func() DayKey

// WallClock returns a Clock reading the system time in loc.
func WallClock(loc *time.Location) Clock {
	return func() DayKey {
		return NewDayKey(time.Now(), loc)
	}
}

// FixedClock returns a Clock pinned to a single day.
func FixedClock(day DayKey) Clock {
	return func() DayKey { return day }
}
