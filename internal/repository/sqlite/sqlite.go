package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

const stateDirPerm = 0o755

// uriEscaper keeps SQLite from reading path characters as URI syntax.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// Repository is the launcher's provisioning ledger. It holds a reference
// to the database and a logger instance for logging operations.
type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewRepository opens (or creates) the ledger file and migrates its schema.
func NewRepository(ctx context.Context, log *slog.Logger, storagePath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(storagePath), stateDirPerm); err != nil {
		return nil, fmt.Errorf("error creating state directory: %w", err)
	}

	dtb, err := sql.Open("sqlite3", dsn(storagePath))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Check if the connection is actually established.
	if err = dtb.PingContext(ctx); err != nil {
		dtb.Close()
		return nil, fmt.Errorf("unable to establish connection to database: %w", err)
	}

	if err = initSchema(ctx, dtb); err != nil {
		dtb.Close()
		return nil, fmt.Errorf("DB schema initialization error: %w", err)
	}

	return &Repository{db: dtb, log: log}, nil
}

// dsn builds the driver connection string for a filesystem path.
func dsn(storagePath string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", uriEscaper.Replace(filepath.ToSlash(storagePath)))
}

// initSchema creates the necessary tables if they don't already exist.
func initSchema(ctx context.Context, dtb *sql.DB) error {
	const migrationQuery = `
	CREATE TABLE IF NOT EXISTS provision_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		env_dir TEXT NOT NULL,
		requirements_hash TEXT NOT NULL,
		status TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS launches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pid INTEGER NOT NULL,
		port INTEGER NOT NULL,
		url TEXT NOT NULL,
		ready INTEGER NOT NULL DEFAULT 0,
		started_at TIMESTAMP NOT NULL
	);
	`
	_, err := dtb.ExecContext(ctx, migrationQuery)
	if err != nil {
		return fmt.Errorf("failed to execute migration query: %w", err)
	}

	return nil
}

// Close closes the connection to the database.
func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.Error("failed to close the database", "op", "repository.sqlite.Close", "error", err)
		return fmt.Errorf("failed to close the database: %w", err)
	}

	return nil
}

// DB is a getter for database handler.
func (r *Repository) DB() *sql.DB {
	return r.db
}
