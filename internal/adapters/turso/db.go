package turso

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/emiliopalmerini/preptrack/internal/infrastructure/config"
)

// NewDB opens and pings the Turso database described by cfg.
func NewDB(cfg config.Database) (*sql.DB, error) {
	connStr := cfg.URL
	if cfg.AuthToken != "" {
		connStr = fmt.Sprintf("%s?authToken=%s", cfg.URL, cfg.AuthToken)
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
