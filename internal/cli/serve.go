package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/preptrack/internal/adapters/codeforces"
	"github.com/emiliopalmerini/preptrack/internal/adapters/gemini"
	"github.com/emiliopalmerini/preptrack/internal/adapters/mail"
	"github.com/emiliopalmerini/preptrack/internal/adapters/otel"
	"github.com/emiliopalmerini/preptrack/internal/adapters/turso"
	"github.com/emiliopalmerini/preptrack/internal/infrastructure/config"
	"github.com/emiliopalmerini/preptrack/internal/migrate"
	"github.com/emiliopalmerini/preptrack/internal/ports"
	"github.com/emiliopalmerini/preptrack/internal/reminder"
	"github.com/emiliopalmerini/preptrack/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the PrepTrack API server and the streak reminder schedule.

Examples:
  preptrack serve              # Start on the configured port (default 5000)
  preptrack serve --port 8080  # Override the port`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides PREPTRACK_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	db, err := turso.NewDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := migrate.Up(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	stateRepo := turso.NewStateRepository(db)
	userRepo := turso.NewUserRepository(db)

	var insight ports.InsightRequester
	if client, err := gemini.NewClient(cfg.Gemini); err != nil {
		log.Printf("AI insights disabled: %v", err)
	} else {
		insight = client
	}

	var mailer ports.Mailer
	if m, err := mail.NewMailer(cfg.SMTP, cfg.FrontendURL); err != nil {
		log.Printf("email disabled: %v", err)
	} else {
		mailer = m
	}

	var metrics ports.MetricsExporter
	if exporter, err := otel.NewExporter(ctx, otel.LoadConfig()); err != nil {
		metrics = otel.NewNoOpExporter()
	} else {
		metrics = exporter
		defer func() {
			if err := exporter.Close(context.Background()); err != nil {
				log.Printf("closing metrics exporter: %v", err)
			}
		}()
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	// Reminder sweeps run only when email is configured.
	if mailer != nil {
		c := cron.New()
		svc := reminder.NewService(userRepo, mailer, metrics)
		if _, err := svc.Schedule(ctx, c, cfg.ReminderSchedule); err != nil {
			return fmt.Errorf("invalid reminder schedule %q: %w", cfg.ReminderSchedule, err)
		}
		c.Start()
		defer c.Stop()
		log.Printf("reminder schedule active: %s", cfg.ReminderSchedule)
	}

	server := web.NewServer(
		cfg.Port, cfg.FrontendURL,
		stateRepo, userRepo, insight, mailer,
		codeforces.NewClient(), metrics,
	)
	return server.Start(ctx)
}
