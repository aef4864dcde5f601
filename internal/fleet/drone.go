package fleet

import "time"

// Drone flight states.
const (
	StatusActive    = "active"
	StatusReturning = "returning"
	StatusLanded    = "landed"
)

// Return-to-home reasons.
const (
	RTHReasonLowBattery      = "low_battery"
	RTHReasonCriticalBattery = "critical_battery"
	RTHReasonManual          = "manual"
)

// Drone is the state of one fleet member.
type Drone struct {
	ID            string    `json:"drone_id"`
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	Alt           float64   `json:"alt"`
	Battery       float64   `json:"battery"`
	Status        string    `json:"status"`
	Detection     string    `json:"detection"`
	Confidence    float64   `json:"confidence"`
	ReturningHome bool      `json:"returning_home"`
	RTHReason     string    `json:"rth_reason,omitempty"`
	Emergency     bool      `json:"emergency_mode,omitempty"`
	RTHInitiated  time.Time `json:"rth_initiated,omitempty"`
	LandedAt      time.Time `json:"landed_at,omitempty"`
}

// FleetStatus summarizes the whole fleet.
type FleetStatus struct {
	TotalDrones      int              `json:"total_drones"`
	ActiveDrones     int              `json:"active_drones"`
	ReturningDrones  int              `json:"returning_drones"`
	LowBatteryDrones int              `json:"low_battery_drones"`
	Drones           map[string]Drone `json:"drones"`
	Monitoring       bool             `json:"monitoring"`
}

// Alert is a fleet event published on the bus for operators.
type Alert struct {
	Type      string    `json:"type"` // "auto_rth", "emergency_rth", "drone_landed"
	DroneID   string    `json:"drone_id"`
	Battery   float64   `json:"battery_level"`
	ETA       float64   `json:"estimated_return_time,omitempty"` // seconds
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// SwarmDetection is one drone's entry in the swarm detections view.
type SwarmDetection struct {
	DroneID       string  `json:"drone_id"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Alt           float64 `json:"alt"`
	Battery       float64 `json:"battery"`
	Status        string  `json:"status"`
	Detection     string  `json:"detection"`
	Confidence    float64 `json:"confidence"`
	ReturningHome bool    `json:"returning_home"`
	RTHReason     string  `json:"rth_reason,omitempty"`
}

// seedDrones is the initial patrol fleet.
func seedDrones() []Drone {
	return []Drone{
		{ID: "GUARD-01", Lat: 28.7041, Lon: 77.1025, Alt: 120.4, Battery: 78, Status: StatusActive, Detection: "Clear"},
		{ID: "GUARD-02", Lat: 28.7055, Lon: 77.1100, Alt: 95.1, Battery: 25, Status: StatusActive, Detection: "Human", Confidence: 0.85},
		{ID: "GUARD-03", Lat: 28.7000, Lon: 77.1000, Alt: 140.0, Battery: 15, Status: StatusActive, Detection: "Clear"},
		{ID: "GUARD-04", Lat: 28.7020, Lon: 77.0950, Alt: 80.0, Battery: 91, Status: StatusActive, Detection: "Human", Confidence: 0.92},
	}
}
