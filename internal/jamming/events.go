package jamming

// Event topics published by the security module.
const (
	TopicJammingDetected = "security.jamming.detected"
	TopicJammingCleared  = "security.jamming.cleared"
)
