package alertlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Store tracks, per symbol, the calendar date of the last emitted alert and
// suppresses repeats within the same day. State is loaded once at startup
// and overwritten wholesale after each scan pass. Dates come from the
// process-local clock.
type Store struct {
	mu       sync.Mutex
	filePath string
	lastSent map[string]string // symbol -> "2006-01-02"
}

// NewStore creates an empty store persisting to filePath.
func NewStore(filePath string) *Store {
	return &Store{filePath: filePath, lastSent: make(map[string]string)}
}

// Load reads the alert log from disk. A missing file leaves the store
// empty; that is not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read alert log: %w", err)
	}
	m := make(map[string]string)
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse alert log: %w", err)
	}
	s.lastSent = m
	return nil
}

// ShouldAlert reports whether no alert has been recorded for symbol on the
// calendar date of t. The comparison is against the current date, so a
// recorded symbol becomes eligible again as soon as the date advances.
func (s *Store) ShouldAlert(symbol string, t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSent[symbol] != t.Format(dateLayout)
}

// Record marks symbol as alerted on the calendar date of t. Idempotent for
// repeated calls with the same date.
func (s *Store) Record(symbol string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSent[symbol] = t.Format(dateLayout)
}

// Persist overwrites the on-disk log with the current state. Called once
// per completed pass, never mid-pass.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.lastSent, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.filePath, data, 0644)
}

// Len returns the number of symbols with a recorded alert date.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lastSent)
}
