package ws

import (
	"time"
)

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	MessageJammingDetected MessageType = "security.jamming_detected"
	MessageJammingCleared  MessageType = "security.jamming_cleared"
	MessageDroneAlert      MessageType = "drones.alert"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data,omitempty"`
}
