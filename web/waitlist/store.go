package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one waitlist signup.
type Entry struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Store persists waitlist signups.
//
// Implementations must treat a duplicate email as a successful, idempotent
// signup rather than an error: the visitor already got what they asked for.
type Store interface {
	// Add records a signup for the given address.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - email: the validated address to record
	//
	// Returns:
	//   - bool: true if a new entry was created, false if the address was already present
	//   - error: error if the signup could not be recorded
	Add(ctx context.Context, email string) (bool, error)

	// Count reports the number of entries on the list.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//
	// Returns:
	//   - int: the entry count
	//   - error: error if the count could not be read
	Count(ctx context.Context) (int, error)

	// Close releases the underlying database handle.
	//
	// Returns:
	//   - error: error if closing fails
	Close() error
}

// sqliteStore implements Store on a SQLite database file.
type sqliteStore struct {
	db *sql.DB
}

var _ Store = &sqliteStore{}

// NewStore opens (creating if necessary) the SQLite database at path and
// ensures the waitlist table exists. Pass ":memory:" for an in-process store.
//
// Parameters:
//   - path: the database file, or ":memory:"
//
// Returns:
//   - Store: the opened store
//   - error: error if the database cannot be opened or migrated
func NewStore(path string) (Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &sqliteStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize creates the waitlist table.
func (s *sqliteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS waitlist (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_waitlist_email ON waitlist(email);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

func (s *sqliteStore) Add(ctx context.Context, email string) (bool, error) {
	normalized := strings.ToLower(email)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO waitlist (id, email) VALUES (?, ?) ON CONFLICT(email) DO NOTHING`,
		uuid.NewString(), normalized,
	)
	if err != nil {
		return false, fmt.Errorf("insert waitlist entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read insert result: %w", err)
	}
	return affected > 0, nil
}

func (s *sqliteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM waitlist`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count waitlist entries: %w", err)
	}
	return count, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
