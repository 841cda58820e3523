package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/emiliopalmerini/preptrack/internal/domain"
)

// StateRepository stores one state document per user in the user_state
// table. Structured fields are JSON columns; Save writes only the
// fields the patch carries, so concurrent writers lose per field, not
// per document.
type StateRepository struct {
	db *sql.DB
}

func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

func (r *StateRepository) Load(ctx context.Context, userID string) (*domain.StateBlob, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT s.tasks, s.videos, s.daily_log, s.streak, s.last_active_date, s.snippets,
		       COALESCE(u.notifications_enabled, 0)
		FROM user_state s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.user_id = ?
	`, userID)

	var (
		tasksJSON, videosJSON, logJSON, snippetsJSON string
		streak                                       int
		lastActive                                   string
		notifications                                int
	)
	err := row.Scan(&tasksJSON, &videosJSON, &logJSON, &streak, &lastActive, &snippetsJSON, &notifications)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load state: %w", err)
	}

	blob := domain.EmptyState()
	blob.Streak = streak
	blob.LastActiveDate = lastActive
	blob.NotificationsEnabled = notifications != 0

	// Unreadable columns degrade to empty values; a corrupt field must
	// not take the whole document down with it.
	_ = json.Unmarshal([]byte(tasksJSON), &blob.Tasks)
	_ = json.Unmarshal([]byte(videosJSON), &blob.Videos)
	_ = json.Unmarshal([]byte(logJSON), &blob.DailyLog)
	_ = json.Unmarshal([]byte(snippetsJSON), &blob.Snippets)

	blob.Normalize()
	return blob, true, nil
}

func (r *StateRepository) Save(ctx context.Context, userID string, patch domain.StatePatch) error {
	if patch.IsEmpty() {
		return nil
	}

	columns := []string{"user_id", "updated_at"}
	values := []any{userID, time.Now().UTC().Format(time.RFC3339)}
	updates := []string{"updated_at = excluded.updated_at"}

	appendField := func(column string, value any) {
		columns = append(columns, column)
		values = append(values, value)
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", column, column))
	}

	if patch.Tasks != nil {
		data, err := json.Marshal(*patch.Tasks)
		if err != nil {
			return fmt.Errorf("failed to encode tasks: %w", err)
		}
		appendField("tasks", string(data))
	}
	if patch.Videos != nil {
		data, err := json.Marshal(*patch.Videos)
		if err != nil {
			return fmt.Errorf("failed to encode videos: %w", err)
		}
		appendField("videos", string(data))
	}
	if patch.DailyLog != nil {
		data, err := json.Marshal(*patch.DailyLog)
		if err != nil {
			return fmt.Errorf("failed to encode daily log: %w", err)
		}
		appendField("daily_log", string(data))
	}
	if patch.Streak != nil {
		appendField("streak", *patch.Streak)
	}
	if patch.LastActiveDate != nil {
		appendField("last_active_date", *patch.LastActiveDate)
	}
	if patch.Snippets != nil {
		data, err := json.Marshal(*patch.Snippets)
		if err != nil {
			return fmt.Errorf("failed to encode snippets: %w", err)
		}
		appendField("snippets", string(data))
	}

	if len(columns) > 2 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
		query := fmt.Sprintf(`
			INSERT INTO user_state (%s) VALUES (%s)
			ON CONFLICT(user_id) DO UPDATE SET %s
		`, strings.Join(columns, ", "), placeholders, strings.Join(updates, ", "))

		if _, err := r.db.ExecContext(ctx, query, values...); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
	}

	// The notification preference lives on the user row, not the state
	// document.
	if patch.NotificationsEnabled != nil {
		enabled := 0
		if *patch.NotificationsEnabled {
			enabled = 1
		}
		if _, err := r.db.ExecContext(ctx,
			`UPDATE users SET notifications_enabled = ? WHERE id = ?`, enabled, userID); err != nil {
			return fmt.Errorf("failed to save notification preference: %w", err)
		}
	}

	return nil
}
