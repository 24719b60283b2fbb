package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"time"

	"task-board/internal/errors"
	"task-board/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options tunes how long individual statements may run.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions returns the timeouts used by New.
func DefaultOptions() Options {
	return Options{
		QueryTimeout: 10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// SQLiteRepository is a repository.KeyValueStore backed by the kv_store table.
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions creates a new SQLite repository instance with explicit timeouts
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewPersistenceError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewPersistenceError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewPersistenceError("run migrations", err)
	}

	defaults := DefaultOptions()
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = defaults.QueryTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaults.WriteTimeout
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get returns the value stored under key and whether it exists
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store WHERE key = ?`
	entry, err := QuerySingle(ctx, r.db, query, ScanEntry, "key", key, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", false, nil
		}
		return "", false, HandleTimeoutError(ctx, "read "+key, r.opts.QueryTimeout, err)
	}
	return entry.Value, true, nil
}

// Set replaces the value stored under key
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	return r.SetMany(ctx, map[string]string{key: value})
}

// SetMany replaces several keys inside a single transaction
func (r *SQLiteRepository) SetMany(ctx context.Context, values map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	return HandleTimeoutError(ctx, "write", r.opts.WriteTimeout, r.setMany(ctx, values))
}

func (r *SQLiteRepository) setMany(ctx context.Context, values map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandlePersistenceError("begin transaction", err)
	}

	query := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	updatedAt := FormatTimeForDB(r.now())

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := ExecuteWithRowsAffected(ctx, tx, query, k, values[k], updatedAt); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return HandlePersistenceError("commit transaction", err)
	}
	return nil
}
