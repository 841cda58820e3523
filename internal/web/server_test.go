package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/emiliopalmerini/preptrack/internal/domain"
	"github.com/emiliopalmerini/preptrack/internal/ports"
)

type mockStateRepo struct {
	LoadFn func(ctx context.Context, userID string) (*domain.StateBlob, bool, error)
	SaveFn func(ctx context.Context, userID string, patch domain.StatePatch) error

	mu         sync.Mutex
	savedPatch *domain.StatePatch
}

func (m *mockStateRepo) Load(ctx context.Context, userID string) (*domain.StateBlob, bool, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx, userID)
	}
	return nil, false, nil
}

func (m *mockStateRepo) Save(ctx context.Context, userID string, patch domain.StatePatch) error {
	m.mu.Lock()
	m.savedPatch = &patch
	m.mu.Unlock()
	if m.SaveFn != nil {
		return m.SaveFn(ctx, userID, patch)
	}
	return nil
}

func (m *mockStateRepo) lastPatch(t *testing.T) domain.StatePatch {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.savedPatch == nil {
		t.Fatal("Expected a Save call, got none")
	}
	return *m.savedPatch
}

type mockUserRepo struct {
	LookupByTokenFn           func(ctx context.Context, token string) (domain.User, bool, error)
	SetNotificationsEnabledFn func(ctx context.Context, userID string, enabled bool) error
	ListNotifiableFn          func(ctx context.Context) ([]ports.ReminderCandidate, error)
}

func (m *mockUserRepo) LookupByToken(ctx context.Context, token string) (domain.User, bool, error) {
	if m.LookupByTokenFn != nil {
		return m.LookupByTokenFn(ctx, token)
	}
	return domain.User{}, false, nil
}

func (m *mockUserRepo) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) error {
	if m.SetNotificationsEnabledFn != nil {
		return m.SetNotificationsEnabledFn(ctx, userID, enabled)
	}
	return nil
}

func (m *mockUserRepo) ListNotifiable(ctx context.Context) ([]ports.ReminderCandidate, error) {
	if m.ListNotifiableFn != nil {
		return m.ListNotifiableFn(ctx)
	}
	return nil, nil
}

type mockInsight struct {
	RequestInsightFn func(ctx context.Context, req ports.InsightRequest) (string, error)
}

func (m *mockInsight) RequestInsight(ctx context.Context, req ports.InsightRequest) (string, error) {
	if m.RequestInsightFn != nil {
		return m.RequestInsightFn(ctx, req)
	}
	return "", nil
}

type mockMailer struct {
	SendWelcomeFn        func(ctx context.Context, email, name string) error
	SendStreakReminderFn func(ctx context.Context, email, name string) error
}

func (m *mockMailer) SendWelcome(ctx context.Context, email, name string) error {
	if m.SendWelcomeFn != nil {
		return m.SendWelcomeFn(ctx, email, name)
	}
	return nil
}

func (m *mockMailer) SendStreakReminder(ctx context.Context, email, name string) error {
	if m.SendStreakReminderFn != nil {
		return m.SendStreakReminderFn(ctx, email, name)
	}
	return nil
}

type mockContests struct {
	ContestsFn func(ctx context.Context) (json.RawMessage, error)
	UserInfoFn func(ctx context.Context, handle string) (json.RawMessage, error)
}

func (m *mockContests) Contests(ctx context.Context) (json.RawMessage, error) {
	if m.ContestsFn != nil {
		return m.ContestsFn(ctx)
	}
	return json.RawMessage(`{"status":"OK","result":[]}`), nil
}

func (m *mockContests) UserInfo(ctx context.Context, handle string) (json.RawMessage, error) {
	if m.UserInfoFn != nil {
		return m.UserInfoFn(ctx, handle)
	}
	return json.RawMessage(`{"status":"OK","result":[]}`), nil
}

type mockMetrics struct {
	mu         sync.Mutex
	activities []domain.EntryKind
	insights   []bool
	reminders  int
}

func (m *mockMetrics) RecordActivity(ctx context.Context, kind domain.EntryKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, kind)
}

func (m *mockMetrics) RecordInsightRequest(ctx context.Context, succeeded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insights = append(m.insights, succeeded)
}

func (m *mockMetrics) RecordReminderSent(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders++
}

func (m *mockMetrics) Close(ctx context.Context) error { return nil }

const testToken = "test-token"

var testUser = domain.User{
	ID:          "user-1",
	Email:       "alice@example.com",
	DisplayName: "Alice",
	TimeZone:    "UTC",
}

type testEnv struct {
	server   *Server
	states   *mockStateRepo
	users    *mockUserRepo
	insight  *mockInsight
	mailer   *mockMailer
	contests *mockContests
	metrics  *mockMetrics
}

func newTestEnv(t *testing.T, today domain.DayKey) *testEnv {
	t.Helper()

	env := &testEnv{
		states:   &mockStateRepo{},
		insight:  &mockInsight{},
		mailer:   &mockMailer{},
		contests: &mockContests{},
		metrics:  &mockMetrics{},
	}
	env.users = &mockUserRepo{
		LookupByTokenFn: func(ctx context.Context, token string) (domain.User, bool, error) {
			if token == testToken {
				return testUser, true, nil
			}
			return domain.User{}, false, nil
		},
	}
	env.server = NewServer(
		0, "http://localhost:3000",
		env.states, env.users, env.insight, env.mailer, env.contests, env.metrics,
	)
	env.server.clockFor = func(domain.User) domain.Clock {
		return domain.FixedClock(today)
	}
	return env
}

func (e *testEnv) request(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "2024-01-07")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t, "2024-01-07")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"unknown token", "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			env.server.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, "2024-01-07")

	req := httptest.NewRequest(http.MethodOptions, "/api/state", nil)
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected frontend origin header, got %q", got)
	}
}
