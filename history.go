package calculation

import (
	"errors"
	"sync"
	"time"
)

// History stores the calculations made by sessions.
// Implementations must be safe for concurrent use.
type History interface {
	// Record stores an entry. Recording an entry with the same session ID and
	// sequence as an existing one replaces it.
	Record(e Entry) error

	// List returns the entries for a session ordered by sequence.
	// Returns an empty slice (not an error) if the session has no entries.
	List(sessionID string) ([]Entry, error)

	// Close releases any resources held by the store.
	Close() error
}

// Entry is one recorded calculation. Result is the string Calculate returned,
// which is "Error" for expressions that could not be evaluated.
type Entry struct {
	SessionID  string
	Sequence   int
	Expression string
	Result     string
	Time       time.Time
}

// ErrHistoryClosed indicates a history store that has been closed.
var ErrHistoryClosed = errors.New("calculation history closed")

// MemoryHistory is a History held in memory. The zero value is ready to use.
type MemoryHistory struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	closed  bool
}

// NewMemoryHistory creates an empty in-memory history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

// Record implements History.
func (h *MemoryHistory) Record(e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHistoryClosed
	}
	if h.entries == nil {
		h.entries = make(map[string][]Entry)
	}
	l := h.entries[e.SessionID]
	for i := range l {
		if l[i].Sequence == e.Sequence {
			l[i] = e
			return nil
		}
	}
	// Keep entries sorted by sequence.
	i := len(l)
	for i > 0 && l[i-1].Sequence > e.Sequence {
		i--
	}
	l = append(l, Entry{})
	copy(l[i+1:], l[i:])
	l[i] = e
	h.entries[e.SessionID] = l
	return nil
}

// List implements History.
func (h *MemoryHistory) List(sessionID string) ([]Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil, ErrHistoryClosed
	}
	return append([]Entry{}, h.entries[sessionID]...), nil
}

// Close implements History. Closing more than once is not an error.
func (h *MemoryHistory) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	h.entries = nil
	return nil
}
