package console

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sensitivity is the detection sensitivity setting.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// Threshold bounds for the detection confidence slider.
const (
	minThreshold = 0.1
	maxThreshold = 1.0
)

// Settings is the control panel's flat configuration record. It lives
// purely in console memory; nothing persists or consumes it.
type Settings struct {
	Threshold         float64     `json:"threshold"`
	Sensitivity       Sensitivity `json:"sensitivity"`
	AutoResponse      bool        `json:"auto_response"`
	SoundAlerts       bool        `json:"sound_alerts"`
	PushNotifications bool        `json:"push_notifications"`
	NightMode         bool        `json:"night_mode"`
}

// DefaultSettings returns the control panel's initial state.
func DefaultSettings() Settings {
	return Settings{
		Threshold:         0.7,
		Sensitivity:       SensitivityMedium,
		AutoResponse:      true,
		SoundAlerts:       true,
		PushNotifications: true,
		NightMode:         false,
	}
}

// Update merges one field into the record and returns the result,
// leaving every other field untouched. Invalid values reject the edit:
// the error carries the reason and the original record is returned
// unchanged. Threshold inputs arrive as text from the control and must
// parse to a finite number within [0.1, 1.0].
func (s Settings) Update(key string, value any) (Settings, error) {
	switch key {
	case "threshold":
		threshold, err := parseThreshold(value)
		if err != nil {
			return s, err
		}
		s.Threshold = threshold
	case "sensitivity":
		sensitivity, err := parseSensitivity(value)
		if err != nil {
			return s, err
		}
		s.Sensitivity = sensitivity
	case "auto_response", "sound_alerts", "push_notifications", "night_mode":
		enabled, ok := value.(bool)
		if !ok {
			return s, fmt.Errorf("setting %q expects a boolean, got %T", key, value)
		}
		switch key {
		case "auto_response":
			s.AutoResponse = enabled
		case "sound_alerts":
			s.SoundAlerts = enabled
		case "push_notifications":
			s.PushNotifications = enabled
		case "night_mode":
			s.NightMode = enabled
		}
	default:
		return s, fmt.Errorf("unknown setting %q", key)
	}
	return s, nil
}

func parseThreshold(value any) (float64, error) {
	var threshold float64
	switch v := value.(type) {
	case float64:
		threshold = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("threshold %q is not a number", v)
		}
		threshold = parsed
	default:
		return 0, fmt.Errorf("threshold expects a number, got %T", value)
	}

	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return 0, fmt.Errorf("threshold must be a finite number")
	}
	if threshold < minThreshold || threshold > maxThreshold {
		return 0, fmt.Errorf("threshold %v outside [%v, %v]", threshold, minThreshold, maxThreshold)
	}
	return threshold, nil
}

func parseSensitivity(value any) (Sensitivity, error) {
	raw, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("sensitivity expects a string, got %T", value)
	}
	sensitivity := Sensitivity(strings.ToLower(strings.TrimSpace(raw)))
	switch sensitivity {
	case SensitivityLow, SensitivityMedium, SensitivityHigh:
		return sensitivity, nil
	default:
		return "", fmt.Errorf("invalid sensitivity %q", raw)
	}
}
