package ports

import "context"

// Mailer sends transactional email. Errors are reported to the caller;
// an unsent mail never invalidates in-memory state.
type Mailer interface {
	// SendWelcome confirms that notifications were enabled.
	SendWelcome(ctx context.Context, email, name string) error

	// SendStreakReminder warns that today has no recorded activity yet.
	SendStreakReminder(ctx context.Context, email, name string) error
}
