package console

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the closed severity set for alert records. Unknown inputs map
// to LevelUnknown, which carries its own default presentation rather
// than borrowing another level's.
type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
	LevelUnknown  Level = "UNKNOWN"
)

// FilterAll is the synthetic filter value selecting every record.
const FilterAll = "all"

var (
	// ErrIndexOutOfRange reports an alert index outside the working list.
	ErrIndexOutOfRange = errors.New("alert index out of range")
	// ErrNotImplemented reports an operation that is intentionally
	// unimplemented pending product definition.
	ErrNotImplemented = errors.New("alert acknowledgment is not implemented")
)

// ParseLevel maps free-form text onto the severity set, case
// insensitively. Anything outside the closed set becomes LevelUnknown.
func ParseLevel(s string) Level {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	switch level {
	case LevelCritical, LevelHigh, LevelMedium, LevelLow:
		return level
	default:
		return LevelUnknown
	}
}

// AlertRecord is one notification shown in the console's alert list.
// Timestamp is a display string supplied by the backend, not a parsed
// time.
type AlertRecord struct {
	ID             string `json:"id"`
	Level          Level  `json:"level"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Timestamp      string `json:"timestamp"`
	Location       string `json:"location"`
	DetectionCount int    `json:"detection_count"`
}

// AlertList is the console's view model over a list of alert records.
// Records arrive externally and display in arrival order; no severity or
// recency sort is applied. The list is owned by the UI event loop and is
// not safe for concurrent use.
type AlertList struct {
	records []AlertRecord
	filter  string
}

// NewAlertList creates a view model with filter "all".
func NewAlertList(records []AlertRecord) *AlertList {
	return &AlertList{
		records: append([]AlertRecord(nil), records...),
		filter:  FilterAll,
	}
}

// Replace swaps the working list wholesale, keeping the current filter.
func (l *AlertList) Replace(records []AlertRecord) {
	l.records = append(l.records[:0:0], records...)
}

// SetFilter selects which levels are visible. Allowed values are "all",
// "critical", "high", "medium" and "low", case insensitively; anything
// else is rejected and the current filter stands.
func (l *AlertList) SetFilter(filter string) error {
	normalized := strings.ToLower(strings.TrimSpace(filter))
	switch normalized {
	case FilterAll, "critical", "high", "medium", "low":
		l.filter = normalized
		return nil
	default:
		return fmt.Errorf("invalid alert filter %q", filter)
	}
}

// Filter returns the active filter value.
func (l *AlertList) Filter() string {
	return l.filter
}

// Visible returns the records matching the active filter, in arrival
// order. Indices into the working list are unaffected by filtering.
func (l *AlertList) Visible() []AlertRecord {
	if l.filter == FilterAll {
		return append([]AlertRecord(nil), l.records...)
	}

	want := ParseLevel(l.filter)
	visible := make([]AlertRecord, 0, len(l.records))
	for _, rec := range l.records {
		if rec.Level == want {
			visible = append(visible, rec)
		}
	}
	return visible
}

// Dismiss removes the record at index from the working list. Remaining
// records keep their relative order.
func (l *AlertList) Dismiss(index int) error {
	if index < 0 || index >= len(l.records) {
		return ErrIndexOutOfRange
	}
	l.records = append(l.records[:index], l.records[index+1:]...)
	return nil
}

// Acknowledge is intentionally unimplemented: no acknowledged state is
// modeled yet, and the record must not be mutated until one is.
func (l *AlertList) Acknowledge(index int) error {
	if index < 0 || index >= len(l.records) {
		return ErrIndexOutOfRange
	}
	return ErrNotImplemented
}

// Len returns the size of the working list, ignoring the filter.
func (l *AlertList) Len() int {
	return len(l.records)
}
