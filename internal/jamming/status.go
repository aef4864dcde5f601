package jamming

import "time"

// Communication channels tracked by the monitor.
const (
	ChannelWiFi     = "wifi"
	ChannelCellular = "cellular"
	ChannelEthernet = "ethernet"
)

// Severity classifies a jamming event.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// severityForScore maps a numeric score to a severity band.
func severityForScore(score float64) Severity {
	switch {
	case score >= 80:
		return SeverityCritical
	case score >= 60:
		return SeverityHigh
	case score >= 40:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// SignalReading is one per-channel signal strength sample. Values are
// positive signal-level numbers (abs dBm); lower is stronger.
type SignalReading struct {
	Timestamp time.Time          `json:"timestamp"`
	Channels  map[string]float64 `json:"channels"`
}

// TargetResult is the probe outcome for one reference target.
type TargetResult struct {
	Target       string  `json:"target"`
	Connected    bool    `json:"connected"`
	ResponseTime float64 `json:"response_time,omitempty"` // milliseconds
}

// NetworkHealth summarizes the most recent probe round.
type NetworkHealth struct {
	Timestamp     time.Time      `json:"timestamp"`
	PacketLoss    float64        `json:"packet_loss"` // percent
	AvgResponseMS float64        `json:"avg_response_ms"`
	Targets       []TargetResult `json:"targets"`
}

// StatusDocument is the monitor's externally visible state. Channels that
// have never been sampled are absent from SignalStrength; consumers render
// placeholders for missing fields.
type StatusDocument struct {
	Monitoring      bool               `json:"monitoring"`
	JammingDetected bool               `json:"jamming_detected"`
	CurrentChannel  string             `json:"current_channel"`
	SignalStrength  map[string]float64 `json:"signal_strength,omitempty"`
	NetworkHealth   *NetworkHealth     `json:"network_health,omitempty"`
	LastUpdate      time.Time          `json:"last_update"`
}

// Event is a detected (or injected) jamming occurrence.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"` // "signal_drop", "network", "test"
	Severity  Severity       `json:"severity"`
	Details   map[string]any `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}
