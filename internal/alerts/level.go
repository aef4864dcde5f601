package alerts

import "strings"

// Level is the closed set of alert severities. Anything outside the four
// known values maps to LevelUnknown rather than leaking free-form strings
// through the API.
type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
	LevelUnknown  Level = "UNKNOWN"
)

// ParseLevel maps a string to a Level, case-insensitively.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return LevelCritical
	case "HIGH":
		return LevelHigh
	case "MEDIUM":
		return LevelMedium
	case "LOW":
		return LevelLow
	default:
		return LevelUnknown
	}
}

// Known reports whether the level is one of the four real severities.
func (l Level) Known() bool {
	switch l {
	case LevelCritical, LevelHigh, LevelMedium, LevelLow:
		return true
	}
	return false
}
