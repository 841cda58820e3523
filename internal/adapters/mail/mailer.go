// Package mail sends transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/emiliopalmerini/preptrack/internal/infrastructure/config"
)

// Mailer delivers the welcome and streak-reminder messages.
type Mailer struct {
	client      *gomail.Client
	from        string
	frontendURL string
}

// NewMailer builds an SMTP mailer. Returns an error when no host is
// configured so callers can disable email features cleanly.
func NewMailer(cfg config.SMTP, frontendURL string) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host not configured")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(15 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	// Port 465 is implicit TLS; anything else negotiates STARTTLS.
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSLPort(false))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating SMTP client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &Mailer{
		client:      client,
		from:        from,
		frontendURL: frontendURL,
	}, nil
}

// SendWelcome confirms that notifications were enabled.
func (m *Mailer) SendWelcome(ctx context.Context, email, name string) error {
	body, err := renderWelcome(name)
	if err != nil {
		return fmt.Errorf("rendering welcome email: %w", err)
	}
	return m.send(ctx, email, "PrepTrack Notifications Enabled", body)
}

// SendStreakReminder warns that today has no recorded activity yet.
func (m *Mailer) SendStreakReminder(ctx context.Context, email, name string) error {
	body, err := renderStreakReminder(name, m.frontendURL)
	if err != nil {
		return fmt.Errorf("rendering reminder email: %w", err)
	}
	return m.send(ctx, email, "Don't Lose Your Streak! - PrepTrack", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat("PrepTrack", m.from); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		if strings.Contains(err.Error(), "535") {
			return fmt.Errorf("SMTP authentication failed, check credentials: %w", err)
		}
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
