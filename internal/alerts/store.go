package alerts

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for store operations.
var (
	ErrIndexOutOfRange = errors.New("alert index out of range")
	ErrNotImplemented  = errors.New("alert acknowledgment is not implemented")
)

// Record is one alert as shown to operators.
type Record struct {
	ID             string    `json:"id"`
	Level          Level     `json:"level"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Timestamp      time.Time `json:"timestamp"`
	Location       string    `json:"location,omitempty"`
	DetectionCount int       `json:"detection_count,omitempty"`
}

// Store holds alerts in arrival order, bounded to maxAlerts. The oldest
// entries are evicted when the bound is exceeded. No sorting, ever: the
// display order is the arrival order.
type Store struct {
	mu        sync.Mutex
	records   []Record
	maxAlerts int
}

// NewStore creates a store bounded to maxAlerts entries. A non-positive
// bound means unbounded.
func NewStore(maxAlerts int) *Store {
	return &Store{maxAlerts: maxAlerts}
}

// Add appends a record, assigning an ID and timestamp when absent, and
// evicts from the front past the bound. Returns the stored record.
func (s *Store) Add(r Record) Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	if !r.Level.Known() {
		r.Level = LevelUnknown
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	if s.maxAlerts > 0 && len(s.records) > s.maxAlerts {
		over := len(s.records) - s.maxAlerts
		s.records = append(s.records[:0:0], s.records[over:]...)
	}
	return r
}

// List returns the records matching the filter, preserving arrival order.
// The filter is "all" (or empty) for everything, otherwise a severity name
// matched case-insensitively; a filter naming no known severity selects the
// UNKNOWN bucket.
func (s *Store) List(filter string) []Record {
	filter = strings.TrimSpace(filter)
	all := filter == "" || strings.EqualFold(filter, "all")
	level := ParseLevel(filter)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if all || r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// Dismiss removes the record at the given index in the unfiltered list,
// keeping the order of the remaining records.
func (s *Store) Dismiss(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return ErrIndexOutOfRange
	}
	s.records = append(s.records[:index], s.records[index+1:]...)
	return nil
}

// Acknowledge is deliberately unimplemented: acknowledgment semantics are
// pending product definition, and callers must surface that honestly
// instead of pretending the alert was handled.
func (s *Store) Acknowledge(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return ErrIndexOutOfRange
	}
	return ErrNotImplemented
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Clear removes all records.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
