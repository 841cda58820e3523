// Package reminder runs the daily streak-risk email sweep.
package reminder

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/emiliopalmerini/preptrack/internal/domain"
	"github.com/emiliopalmerini/preptrack/internal/ports"
)

// Service sweeps notifiable users and mails the ones with no activity
// recorded today in their own time zone. Send-only: it never mutates
// streak state, a missed day is observed lazily at the next log.
type Service struct {
	users   ports.UserRepository
	mailer  ports.Mailer
	metrics ports.MetricsExporter

	// now is the reference instant per user zone, overridable in tests.
	now func(user domain.User) domain.DayKey
}

func NewService(users ports.UserRepository, mailer ports.Mailer, metrics ports.MetricsExporter) *Service {
	return &Service{
		users:   users,
		mailer:  mailer,
		metrics: metrics,
		now: func(user domain.User) domain.DayKey {
			return domain.WallClock(user.Location())()
		},
	}
}

// SweepResult counts what one sweep did.
type SweepResult struct {
	Candidates int
	Sent       int
	Failed     int
}

// Sweep mails every candidate whose last active day is not today in
// their zone. Individual failures are logged and counted, never abort
// the sweep.
func (s *Service) Sweep(ctx context.Context) (SweepResult, error) {
	candidates, err := s.users.ListNotifiable(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("listing notifiable users: %w", err)
	}

	result := SweepResult{Candidates: len(candidates)}
	for _, candidate := range candidates {
		if !s.needsReminder(candidate) {
			continue
		}
		user := candidate.User
		if err := s.mailer.SendStreakReminder(ctx, user.Email, user.Name()); err != nil {
			log.Printf("streak reminder to %s: %v", user.Email, err)
			result.Failed++
			continue
		}
		s.metrics.RecordReminderSent(ctx)
		result.Sent++
	}
	return result, nil
}

// needsReminder is true when the user has not logged anything today in
// their own zone. Unparseable stored dates count as stale.
func (s *Service) needsReminder(candidate ports.ReminderCandidate) bool {
	today := s.now(candidate.User)
	lastActive, ok := domain.ParseDayKey(candidate.LastActiveDate)
	if !ok {
		return true
	}
	return lastActive != today
}

// Schedule registers the sweep on c with the given cron expression and
// returns the entry ID.
func (s *Service) Schedule(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		result, err := s.Sweep(ctx)
		if err != nil {
			log.Printf("reminder sweep failed: %v", err)
			return
		}
		log.Printf("reminder sweep: %d candidates, %d sent, %d failed",
			result.Candidates, result.Sent, result.Failed)
	})
}
