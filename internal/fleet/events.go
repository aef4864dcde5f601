package fleet

// Event topics published by the drones module.
const (
	TopicDroneAlert = "drones.alert"
)
