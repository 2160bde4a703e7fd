// Package storage reads the finance relations from SQLite or Postgres
// through database/sql.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finboard/internal/report"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Options configures Open.
type Options struct {
	Dialect Dialect
	// DSN is a file path for SQLite and a connection string for Postgres.
	DSN string
	// Migrate applies the embedded schema before the store is returned.
	Migrate bool
	// MaxOpenConns caps the pool. Zero leaves the driver default.
	MaxOpenConns int
}

// Store is a pool of connections to the finance database.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database described by opts and verifies it answers.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if !opts.Dialect.IsValid() {
		return nil, fmt.Errorf("unsupported dialect: %q", opts.Dialect)
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("%s: empty data source name", opts.Dialect)
	}

	if opts.Dialect == SQLite {
		if err := os.MkdirAll(filepath.Dir(opts.DSN), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open(opts.Dialect.DriverName(), opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Dialect, err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &report.UnavailableError{Err: fmt.Errorf("ping database: %w", err)}
	}

	if opts.Migrate {
		if err := RunMigrations(opts.Dialect, opts.DSN); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		slog.InfoContext(ctx, "Schema migrations applied", "dialect", opts.Dialect)
	}

	return &Store{db: db, dialect: opts.Dialect}, nil
}

// Dialect reports the SQL flavour of the store.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Session takes one connection out of the pool and checks it is alive. The
// caller must Close the session.
func (s *Store) Session(ctx context.Context) (*Session, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, &report.UnavailableError{Err: fmt.Errorf("acquire connection: %w", err)}
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, &report.UnavailableError{Err: fmt.Errorf("ping connection: %w", err)}
	}
	return &Session{conn: conn, dialect: s.dialect}, nil
}

// Ping checks the database answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &report.UnavailableError{Err: err}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
