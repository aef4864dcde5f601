package console

import "time"

// ThreatLevel values derived from a status document.
const (
	ThreatDetected = "DETECTED"
	ThreatSecure   = "SECURE"
	ThreatStandby  = "STANDBY"
)

// TargetResult is the probe outcome for one reference target, as reported
// by the security API.
type TargetResult struct {
	Target       string  `json:"target"`
	Connected    bool    `json:"connected"`
	ResponseTime float64 `json:"response_time,omitempty"`
}

// NetworkHealth summarizes the backend's most recent probe round.
type NetworkHealth struct {
	Timestamp     time.Time      `json:"timestamp"`
	PacketLoss    float64        `json:"packet_loss"`
	AvgResponseMS float64        `json:"avg_response_ms"`
	Targets       []TargetResult `json:"targets"`
}

// StatusDocument is the backend-defined anti-jamming snapshot. It is
// consumed read-only and replaced wholesale on every successful poll;
// absent optional fields render as placeholders, never as errors.
type StatusDocument struct {
	Monitoring      bool               `json:"monitoring"`
	JammingDetected bool               `json:"jamming_detected"`
	CurrentChannel  string             `json:"current_channel"`
	SignalStrength  map[string]float64 `json:"signal_strength,omitempty"`
	NetworkHealth   *NetworkHealth     `json:"network_health,omitempty"`
	LastUpdate      time.Time          `json:"last_update"`
}

// SignalDBm returns the signal strength for a channel and whether it was
// present in the document. Missing channels are a placeholder case, not
// an error.
func (d StatusDocument) SignalDBm(channel string) (float64, bool) {
	v, ok := d.SignalStrength[channel]
	return v, ok
}

// ComputeThreatLevel classifies a status document for display: DETECTED
// while jamming is flagged, SECURE while monitoring is active and clear,
// STANDBY otherwise.
func ComputeThreatLevel(doc StatusDocument) string {
	switch {
	case doc.JammingDetected:
		return ThreatDetected
	case doc.Monitoring:
		return ThreatSecure
	default:
		return ThreatStandby
	}
}
