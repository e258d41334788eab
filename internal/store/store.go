package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/text/unicode/norm"

	"orderdesk/internal/auth"
)

//go:embed schema.sql
var schemaSQL string

// InitialAdminPassword is seeded (hashed) into a fresh store. Rotate it with
// the passwd command after first login.
const InitialAdminPassword = "admin123"

// DefaultSplashLogo is the placeholder logo path seeded into a fresh store.
const DefaultSplashLogo = "default_splash_logo.png"

// Store wraps the single SQLite database behind all components.
type Store struct {
	db *sql.DB

	workerHooks []func(name string)
}

// Open creates or opens the SQLite database at the given path, applies
// pragmas, creates missing tables and columns, and seeds default settings.
// Idempotent - safe to call on an existing store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the single-operator model.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	if err := seedSettings(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and applies additive
// migrations. Stores written before serial numbers existed gain the
// serial_no column here; existing rows keep a NULL serial.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	for _, table := range []string{"orders", "workers"} {
		ok, err := tableHasColumn(db, table, "serial_no")
		if err != nil {
			return err
		}
		if !ok {
			if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN serial_no INTEGER", table)); err != nil {
				return fmt.Errorf("add serial_no to %s: %w", table, err)
			}
		}
	}

	return nil
}

// tableHasColumn checks the live schema via PRAGMA table_info.
func tableHasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, fmt.Errorf("scan table_info %s: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}

	return false, rows.Err()
}

// seedSettings inserts default settings, never overwriting existing values.
func seedSettings(db *sql.DB) error {
	hash, err := auth.HashPassword(InitialAdminPassword)
	if err != nil {
		return fmt.Errorf("hash initial password: %w", err)
	}

	defaults := map[string]string{
		"admin_password":   hash,
		"splash_logo_path": DefaultSplashLogo,
	}

	for key, value := range defaults {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)", key, value,
		); err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}

	return nil
}

// canon trims and NFC-normalizes a key value so that visually identical
// input always hits the same unique index entry.
func canon(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
