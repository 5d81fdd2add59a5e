package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DefaultSQLitePath is used when no database URL is configured.
const DefaultSQLitePath = "scartix.db"

// ParseURL picks the driver for a DATABASE_URL value. Postgres URLs and
// key=value DSNs go to lib/pq; sqlite: prefixes, file: URIs and *.db paths go to SQLite.
func ParseURL(raw string) (Dialect, string) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return SQLite, DefaultSQLitePath
	case strings.HasPrefix(raw, "sqlite://"):
		return SQLite, strings.TrimPrefix(raw, "sqlite://")
	case strings.HasPrefix(raw, "sqlite:"):
		return SQLite, strings.TrimPrefix(raw, "sqlite:")
	case strings.HasPrefix(raw, "file:"), strings.HasSuffix(raw, ".db"), raw == ":memory:":
		return SQLite, raw
	}
	if !strings.Contains(raw, "sslmode=") {
		if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
			sep := "?"
			if strings.Contains(raw, "?") {
				sep = "&"
			}
			raw = raw + sep + "sslmode=require"
		} else {
			raw = raw + " sslmode=require"
		}
	}
	return Postgres, raw
}

// Open connects, pings and applies the schema.
func Open(ctx context.Context, databaseURL string) (*sql.DB, Dialect, error) {
	dialect, dsn := ParseURL(databaseURL)
	if dialect == SQLite && !strings.Contains(dsn, "_time_format") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_time_format=sqlite"
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == SQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", dialect, err)
	}
	if err := Migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, "", err
	}
	return db, dialect, nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		login TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		password TEXT NOT NULL,
		institution TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		porosity INTEGER NOT NULL,
		mechanical_strength DOUBLE PRECISION NOT NULL,
		cell_migration DOUBLE PRECISION NOT NULL,
		best_tissue TEXT NOT NULL,
		best_score DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS predictions_user_idx ON predictions (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS support_tickets (
		id SERIAL PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		user_id INTEGER NOT NULL DEFAULT 0,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		login TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		password TEXT NOT NULL,
		institution TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		porosity INTEGER NOT NULL,
		mechanical_strength REAL NOT NULL,
		cell_migration REAL NOT NULL,
		best_tissue TEXT NOT NULL,
		best_score REAL NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS predictions_user_idx ON predictions (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS support_tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reference TEXT NOT NULL UNIQUE,
		user_id INTEGER NOT NULL DEFAULT 0,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		created_at DATETIME NOT NULL
	)`,
}

func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	schema := postgresSchema
	if dialect == SQLite {
		schema = sqliteSchema
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", dialect, err)
		}
	}
	return nil
}
