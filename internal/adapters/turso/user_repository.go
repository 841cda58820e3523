package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emiliopalmerini/preptrack/internal/domain"
	"github.com/emiliopalmerini/preptrack/internal/ports"
)

// UserRepository resolves users by API token and serves the reminder
// sweep.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) LookupByToken(ctx context.Context, token string) (domain.User, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, time_zone, notifications_enabled
		FROM users
		WHERE api_token = ?
	`, token)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, true, nil
}

func (r *UserRepository) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET notifications_enabled = ? WHERE id = ?`, value, userID)
	if err != nil {
		return fmt.Errorf("failed to update notification preference: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("unknown user %s", userID)
	}
	return nil
}

func (r *UserRepository) ListNotifiable(ctx context.Context) ([]ports.ReminderCandidate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.display_name, u.time_zone, u.notifications_enabled,
		       COALESCE(s.last_active_date, '')
		FROM users u
		LEFT JOIN user_state s ON s.user_id = u.id
		WHERE u.notifications_enabled = 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifiable users: %w", err)
	}
	defer rows.Close()

	var candidates []ports.ReminderCandidate
	for rows.Next() {
		var (
			user          domain.User
			notifications int
			lastActive    string
		)
		if err := rows.Scan(&user.ID, &user.Email, &user.DisplayName, &user.TimeZone,
			&notifications, &lastActive); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.NotificationsEnabled = notifications != 0
		candidates = append(candidates, ports.ReminderCandidate{
			User:           user,
			LastActiveDate: lastActive,
		})
	}
	return candidates, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	var notifications int
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.TimeZone, &notifications)
	if err != nil {
		return domain.User{}, err
	}
	user.NotificationsEnabled = notifications != 0
	return user, nil
}
