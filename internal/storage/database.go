package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// timeLayout is how timestamps are stored in TEXT columns.
const timeLayout = time.RFC3339Nano

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DB is the deck and card repository. Every exported method runs as one
// transaction and has committed by the time it returns.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// Open opens (creating if needed) the database file at path and ensures the
// schema exists. Foreign keys are enforced on the connection.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: failed to create database directory %s: %v", domain.ErrIO, dir, err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", domain.ErrIO, err)
	}
	// One writer, and ":memory:" databases are per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: failed to connect to database: %v", domain.ErrIO, err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: failed to apply schema: %v", domain.ErrIO, err)
	}

	slog.Debug("database opened", "path", path)
	return &DB{conn: conn, now: time.Now}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// withTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func (db *DB) withTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("failed to roll back transaction", "error", rbErr, "cause", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (db *DB) timestamp() string {
	return db.now().UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
