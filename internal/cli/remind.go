package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/preptrack/internal/adapters/mail"
	"github.com/emiliopalmerini/preptrack/internal/adapters/otel"
	"github.com/emiliopalmerini/preptrack/internal/adapters/turso"
	"github.com/emiliopalmerini/preptrack/internal/infrastructure/config"
	"github.com/emiliopalmerini/preptrack/internal/ports"
	"github.com/emiliopalmerini/preptrack/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run one streak reminder sweep",
	Long: `Run a single streak reminder sweep and exit.

Mails every user with notifications enabled who has no activity logged
today in their own time zone. Useful from an external scheduler instead
of the built-in one.`,
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	mailer, err := mail.NewMailer(cfg.SMTP, cfg.FrontendURL)
	if err != nil {
		return fmt.Errorf("email is required for reminders: %w", err)
	}

	db, err := turso.NewDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var metrics ports.MetricsExporter
	if exporter, err := otel.NewExporter(ctx, otel.LoadConfig()); err != nil {
		metrics = otel.NewNoOpExporter()
	} else {
		metrics = exporter
		defer func() { _ = exporter.Close(context.Background()) }()
	}

	svc := reminder.NewService(turso.NewUserRepository(db), mailer, metrics)
	result, err := svc.Sweep(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d candidates, %d sent, %d failed\n",
		result.Candidates, result.Sent, result.Failed)
	return nil
}
