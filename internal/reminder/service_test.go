package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/emiliopalmerini/preptrack/internal/domain"
	"github.com/emiliopalmerini/preptrack/internal/ports"
)

type mockUserRepo struct {
	ListNotifiableFn func(ctx context.Context) ([]ports.ReminderCandidate, error)
}

func (m *mockUserRepo) LookupByToken(ctx context.Context, token string) (domain.User, bool, error) {
	return domain.User{}, false, nil
}

func (m *mockUserRepo) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) error {
	return nil
}

func (m *mockUserRepo) ListNotifiable(ctx context.Context) ([]ports.ReminderCandidate, error) {
	return m.ListNotifiableFn(ctx)
}

type mockMailer struct {
	SendStreakReminderFn func(ctx context.Context, email, name string) error

	mu   sync.Mutex
	sent []string
}

func (m *mockMailer) SendWelcome(ctx context.Context, email, name string) error { return nil }

func (m *mockMailer) SendStreakReminder(ctx context.Context, email, name string) error {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()
	if m.SendStreakReminderFn != nil {
		return m.SendStreakReminderFn(ctx, email, name)
	}
	return nil
}

type mockMetrics struct {
	reminders int
}

func (m *mockMetrics) RecordActivity(ctx context.Context, kind domain.EntryKind) {}
func (m *mockMetrics) RecordInsightRequest(ctx context.Context, succeeded bool)  {}
func (m *mockMetrics) RecordReminderSent(ctx context.Context)                    { m.reminders++ }
func (m *mockMetrics) Close(ctx context.Context) error                           { return nil }

func candidate(email, zone, lastActive string) ports.ReminderCandidate {
	return ports.ReminderCandidate{
		User:           domain.User{ID: email, Email: email, TimeZone: zone, NotificationsEnabled: true},
		LastActiveDate: lastActive,
	}
}

func fixedService(users *mockUserRepo, mailer *mockMailer, metrics *mockMetrics, today domain.DayKey) *Service {
	s := NewService(users, mailer, metrics)
	s.now = func(domain.User) domain.DayKey { return today }
	return s
}

func TestSweepSendsToStaleUsers(t *testing.T) {
	users := &mockUserRepo{
		ListNotifiableFn: func(ctx context.Context) ([]ports.ReminderCandidate, error) {
			return []ports.ReminderCandidate{
				candidate("stale@example.com", "UTC", "2024-01-06"),
				candidate("active@example.com", "UTC", "2024-01-07"),
				candidate("never@example.com", "UTC", ""),
			}, nil
		},
	}
	mailer := &mockMailer{}
	metrics := &mockMetrics{}
	s := fixedService(users, mailer, metrics, "2024-01-07")

	result, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if result.Candidates != 3 {
		t.Errorf("Expected 3 candidates, got %d", result.Candidates)
	}
	if result.Sent != 2 {
		t.Errorf("Expected 2 reminders sent, got %d", result.Sent)
	}
	if len(mailer.sent) != 2 || mailer.sent[0] != "stale@example.com" || mailer.sent[1] != "never@example.com" {
		t.Errorf("Expected reminders to stale and never-active users, got %v", mailer.sent)
	}
	if metrics.reminders != 2 {
		t.Errorf("Expected 2 reminder metrics, got %d", metrics.reminders)
	}
}

func TestSweepFailuresDoNotAbort(t *testing.T) {
	users := &mockUserRepo{
		ListNotifiableFn: func(ctx context.Context) ([]ports.ReminderCandidate, error) {
			return []ports.ReminderCandidate{
				candidate("broken@example.com", "UTC", "2024-01-01"),
				candidate("fine@example.com", "UTC", "2024-01-01"),
			}, nil
		},
	}
	mailer := &mockMailer{
		SendStreakReminderFn: func(ctx context.Context, email, name string) error {
			if email == "broken@example.com" {
				return errors.New("mailbox unavailable")
			}
			return nil
		},
	}
	metrics := &mockMetrics{}
	s := fixedService(users, mailer, metrics, "2024-01-07")

	result, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if result.Sent != 1 || result.Failed != 1 {
		t.Errorf("Expected 1 sent and 1 failed, got %+v", result)
	}
	if metrics.reminders != 1 {
		t.Errorf("Expected 1 reminder metric, got %d", metrics.reminders)
	}
}

func TestSweepListFailure(t *testing.T) {
	users := &mockUserRepo{
		ListNotifiableFn: func(ctx context.Context) ([]ports.ReminderCandidate, error) {
			return nil, errors.New("database locked")
		},
	}
	s := fixedService(users, &mockMailer{}, &mockMetrics{}, "2024-01-07")

	if _, err := s.Sweep(context.Background()); err == nil {
		t.Error("Expected error when listing fails")
	}
}

func TestNeedsReminderPerZone(t *testing.T) {
	s := NewService(nil, nil, nil)

	tests := []struct {
		name       string
		today      domain.DayKey
		lastActive string
		want       bool
	}{
		{"active today", "2024-01-07", "2024-01-07", false},
		{"active yesterday", "2024-01-07", "2024-01-06", true},
		{"legacy key for today", "2024-01-07", "Sun Jan 07 2024", false},
		{"garbage date", "2024-01-07", "not-a-date", true},
		{"never active", "2024-01-07", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.now = func(domain.User) domain.DayKey { return tt.today }
			got := s.needsReminder(candidate("u@example.com", "UTC", tt.lastActive))
			if got != tt.want {
				t.Errorf("needsReminder(%q) = %v, want %v", tt.lastActive, got, tt.want)
			}
		})
	}
}
