package calculation

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteHistory persists calculation history to SQLite.
type SQLiteHistory struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteHistory opens or creates a history database. The path should be a
// file path (e.g., "./history.db") or ":memory:" for testing.
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to :memory: is a distinct database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			session_id TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			expression TEXT NOT NULL,
			result TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			PRIMARY KEY (session_id, sequence)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteHistory{db: db}, nil
}

// Record implements History.
func (h *SQLiteHistory) Record(e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHistoryClosed
	}

	_, err := h.db.Exec(`
		INSERT INTO history (session_id, sequence, expression, result, timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id, sequence) DO UPDATE SET
			expression = excluded.expression,
			result = excluded.result,
			timestamp = excluded.timestamp
	`, e.SessionID, e.Sequence, e.Expression, e.Result, e.Time.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// List implements History.
func (h *SQLiteHistory) List(sessionID string) ([]Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil, ErrHistoryClosed
	}

	rows, err := h.db.Query(`
		SELECT sequence, expression, result, timestamp
		FROM history
		WHERE session_id = ?
		ORDER BY sequence
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e := Entry{SessionID: sessionID}
		var timestamp string
		if err := rows.Scan(&e.Sequence, &e.Expression, &e.Result, &timestamp); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Time, _ = time.Parse(time.RFC3339Nano, timestamp)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Close implements History. Closing more than once is not an error.
func (h *SQLiteHistory) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	return h.db.Close()
}
