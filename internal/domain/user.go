package domain

import "time"

// User is the owning identity for one state document.
type User struct {
	ID                   string
	Email                string
	DisplayName          string
	TimeZone             string
	NotificationsEnabled bool
}

// Location resolves the user's IANA time zone, falling back to UTC for
// unset or invalid values.
func (u User) Location() *time.Location {
	if u.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Name returns the display name, falling back to the email local part.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	for i, r := range u.Email {
		if r == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
