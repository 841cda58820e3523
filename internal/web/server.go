// Package web exposes the JSON API consumed by the PrepTrack frontend.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/emiliopalmerini/preptrack/internal/domain"
	"github.com/emiliopalmerini/preptrack/internal/ports"
)

type Server struct {
	router      *http.ServeMux
	port        int
	frontendURL string

	stateRepo ports.StateRepository
	userRepo  ports.UserRepository
	insight   ports.InsightRequester
	mailer    ports.Mailer
	contests  ports.ContestSource
	metrics   ports.MetricsExporter

	// clockFor returns the calendar clock for a user's time zone.
	// Overridable in tests for date determinism.
	clockFor func(domain.User) domain.Clock
}

func NewServer(
	port int,
	frontendURL string,
	sr ports.StateRepository,
	ur ports.UserRepository,
	ir ports.InsightRequester,
	m ports.Mailer,
	cs ports.ContestSource,
	me ports.MetricsExporter,
) *Server {
	s := &Server{
		router:      http.NewServeMux(),
		port:        port,
		frontendURL: frontendURL,
		stateRepo:   sr,
		userRepo:    ur,
		insight:     ir,
		mailer:      m,
		contests:    cs,
		metrics:     me,
		clockFor: func(u domain.User) domain.Clock {
			return domain.WallClock(u.Location())
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Public proxy endpoints
	s.router.HandleFunc("GET /api/codeforces/contests", s.handleContests)
	s.router.HandleFunc("GET /api/codeforces/user/{handle}", s.handleContestUser)

	// State sync
	s.router.HandleFunc("GET /api/state", s.requireUser(s.handleGetState))
	s.router.HandleFunc("PATCH /api/state", s.requireUser(s.handlePatchState))

	// Activity logging
	s.router.HandleFunc("POST /api/activity", s.requireUser(s.handleRecordActivity))
	s.router.HandleFunc("POST /api/tasks/reset", s.requireUser(s.handleResetTasks))
	s.router.HandleFunc("POST /api/videos/reset", s.requireUser(s.handleResetVideos))
	s.router.HandleFunc("DELETE /api/videos/{id}", s.requireUser(s.handleDeleteVideo))

	// Aggregation
	s.router.HandleFunc("GET /api/summary", s.requireUser(s.handleSummary))
	s.router.HandleFunc("GET /api/calendar", s.requireUser(s.handleCalendar))
	s.router.HandleFunc("GET /api/dashboard", s.requireUser(s.handleDashboard))

	// Collaborator relays
	s.router.HandleFunc("POST /api/ai-summary", s.requireUser(s.handleAISummary))
	s.router.HandleFunc("POST /api/send-notification-email", s.requireUser(s.handleSendNotificationEmail))
	s.router.HandleFunc("POST /api/update-notification-preference", s.requireUser(s.handleUpdateNotificationPreference))
}

// Handler exposes the routing table, wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	return s.withCORS(s.router)
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("Starting server at http://localhost:%d\n", s.port)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Server shutdown error: %v\n", err)
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}

// withCORS allows the configured frontend origin. The browser frontend
// runs on a different port in development.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
