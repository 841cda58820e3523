package ports

import (
	"context"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

// StateRepository is the sync gateway: one state document per user,
// loaded whole and saved per top-level field.
type StateRepository interface {
	// Load returns the user's state document. found is false when the
	// user has never saved anything; callers degrade to an empty state.
	Load(ctx context.Context, userID string) (blob *domain.StateBlob, found bool, err error)

	// Save merges the supplied patch fields into the stored document,
	// leaving absent fields untouched. Creates the document if needed.
	Save(ctx context.Context, userID string, patch domain.StatePatch) error
}

// ReminderCandidate pairs a notifiable user with their last recorded
// active date, as stored.
type ReminderCandidate struct {
	User           domain.User
	LastActiveDate string
}

// UserRepository resolves identities and reminder candidates.
type UserRepository interface {
	// LookupByToken returns the user owning the given API token, or
	// found=false for an unknown token.
	LookupByToken(ctx context.Context, token string) (user domain.User, found bool, err error)

	// SetNotificationsEnabled flips the user's email preference.
	SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) error

	// ListNotifiable returns every user with notifications enabled,
	// with their stored last active date. The reminder service decides
	// staleness per user time zone.
	ListNotifiable(ctx context.Context) ([]ReminderCandidate, error)
}
