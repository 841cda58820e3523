package config

import "github.com/kelseyhightower/envconfig"

// Database holds Turso database configuration.
type Database struct {
	URL       string `envconfig:"PREPTRACK_DATABASE_URL" required:"true"`
	AuthToken string `envconfig:"PREPTRACK_DATABASE_AUTH_TOKEN"`
}

// SMTP holds transactional mail configuration. Email features degrade
// to disabled when Host is empty.
type SMTP struct {
	Host     string `envconfig:"PREPTRACK_SMTP_HOST"`
	Port     int    `envconfig:"PREPTRACK_SMTP_PORT" default:"465"`
	Username string `envconfig:"PREPTRACK_SMTP_USERNAME"`
	Password string `envconfig:"PREPTRACK_SMTP_PASSWORD"`
	From     string `envconfig:"PREPTRACK_SMTP_FROM"`
}

// Gemini holds the hosted-model relay configuration.
type Gemini struct {
	APIKey string `envconfig:"PREPTRACK_GEMINI_API_KEY"`
	Model  string `envconfig:"PREPTRACK_GEMINI_MODEL" default:"gemini-1.5-flash"`
}

// Server holds everything the serve command needs.
type Server struct {
	Database Database
	SMTP     SMTP
	Gemini   Gemini

	Port             int    `envconfig:"PREPTRACK_PORT" default:"5000"`
	FrontendURL      string `envconfig:"PREPTRACK_FRONTEND_URL" default:"http://localhost:3000"`
	ReminderSchedule string `envconfig:"PREPTRACK_REMINDER_SCHEDULE" default:"0 18 * * *"`
}

// LoadServer loads server configuration from environment variables.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.SMTP); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Gemini); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDatabase loads only the database configuration, for commands that
// do not serve traffic.
func LoadDatabase() (*Database, error) {
	var cfg Database
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
