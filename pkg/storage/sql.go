package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const blobTable = "kv_blobs"

// SQLBackend keeps every collection blob as one row in a kv_blobs table.
// Works with the sqlite and postgres drivers; the table is created at open.
type SQLBackend struct {
	db     *sqlx.DB
	flavor sqlbuilder.Flavor
	logger ectologger.Logger
}

// NewSQLiteBackend opens (creating if needed) a sqlite database file.
func NewSQLiteBackend(path string, logger ectologger.Logger) (*SQLBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", path, err)
	}

	backend := &SQLBackend{db: db, flavor: sqlbuilder.SQLite, logger: logger}
	if err := backend.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Infof("Opened sqlite storage at %s", path)
	return backend, nil
}

// NewPostgresBackend connects to postgres with the given DSN.
func NewPostgresBackend(dsn string, logger ectologger.Logger) (*SQLBackend, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	backend := &SQLBackend{db: db, flavor: sqlbuilder.PostgreSQL, logger: logger}
	if err := backend.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("Connected to postgres storage")
	return backend, nil
}

func (s *SQLBackend) init() error {
	schema := `CREATE TABLE IF NOT EXISTS ` + blobTable + ` (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create %s table: %w", blobTable, err)
	}
	return nil
}

func (s *SQLBackend) Name() string {
	if s.flavor == sqlbuilder.PostgreSQL {
		return "postgres"
	}
	return "sqlite"
}

func (s *SQLBackend) Get(ctx context.Context, key string) (string, bool, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("value")
	sb.From(blobTable)
	sb.Where(sb.Equal("key", key))

	query, args := sb.BuildWithFlavor(s.flavor)

	var value string
	err := s.db.GetContext(ctx, &value, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLBackend) Set(ctx context.Context, key string, value string) error {
	ib := sqlbuilder.NewInsertBuilder()
	ib.InsertInto(blobTable)
	ib.Cols("key", "value", "updated_at")
	ib.Values(key, value, time.Now().UTC())
	// Same clause is valid for sqlite and postgres.
	ib.SQL("ON CONFLICT(key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at")

	query, args := ib.BuildWithFlavor(s.flavor)

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *SQLBackend) Delete(ctx context.Context, key string) error {
	db := sqlbuilder.NewDeleteBuilder()
	db.DeleteFrom(blobTable)
	db.Where(db.Equal("key", key))

	query, args := db.BuildWithFlavor(s.flavor)

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *SQLBackend) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLBackend) Close() error {
	return s.db.Close()
}
