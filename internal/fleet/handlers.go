package fleet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/fleet-status", Handler: m.handleFleetStatus},
		{Method: "POST", Path: "/{drone_id}/rth", Handler: m.handleManualRTH},
		{Method: "POST", Path: "/emergency-rth-all", Handler: m.handleEmergencyRTHAll},
	}
}

// SwarmResponse is the legacy swarm detections document.
type SwarmResponse struct {
	Timestamp    time.Time        `json:"timestamp"`
	TotalDrones  int              `json:"total_drones"`
	ActiveDrones int              `json:"active_drones"`
	Detections   []SwarmDetection `json:"detections"`
}

// handleFleetStatus returns the fleet snapshot.
//
//	@Summary		Fleet status
//	@Description	Returns counts and per-drone state for the whole fleet.
//	@Tags			drones
//	@Produce		json
//	@Success		200	{object}	FleetStatus
//	@Router			/drones/fleet-status [get]
func (m *Module) handleFleetStatus(w http.ResponseWriter, r *http.Request) {
	fleetWriteJSON(w, http.StatusOK, m.manager.Status())
}

// handleManualRTH commands one drone home.
//
//	@Summary		Manual return to home
//	@Description	Commands the named drone to return to home base.
//	@Tags			drones
//	@Produce		json
//	@Param			drone_id	path	string	true	"Drone ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/drones/{drone_id}/rth [post]
func (m *Module) handleManualRTH(w http.ResponseWriter, r *http.Request) {
	droneID := r.PathValue("drone_id")
	if droneID == "" {
		fleetWriteError(w, http.StatusBadRequest, "drone_id is required")
		return
	}

	if err := m.manager.ManualRTH(droneID); err != nil {
		if errors.Is(err, ErrDroneNotFound) {
			fleetWriteError(w, http.StatusNotFound, "Drone not found")
			return
		}
		fleetWriteError(w, http.StatusInternalServerError, "RTH command failed")
		return
	}

	fleetWriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("RTH initiated for %s", droneID),
		"status":  "success",
	})
}

// handleEmergencyRTHAll commands every active drone home.
//
//	@Summary		Emergency RTH for all drones
//	@Description	Commands all active drones to return home at emergency speed.
//	@Tags			drones
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/drones/emergency-rth-all [post]
func (m *Module) handleEmergencyRTHAll(w http.ResponseWriter, r *http.Request) {
	commanded := m.manager.EmergencyRTHAll()
	fleetWriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Emergency RTH initiated for all drones",
		"status":    "success",
		"commanded": commanded,
	})
}

// handleSwarmDetections serves the legacy swarm view at /api/detections/swarm.
//
//	@Summary		Swarm detections
//	@Description	Returns the per-drone detection view consumed by the map overlay.
//	@Tags			drones
//	@Produce		json
//	@Success		200	{object}	SwarmResponse
//	@Router			/detections/swarm [get]
func (m *Module) handleSwarmDetections(w http.ResponseWriter, r *http.Request) {
	status := m.manager.Status()
	fleetWriteJSON(w, http.StatusOK, SwarmResponse{
		Timestamp:    time.Now(),
		TotalDrones:  status.TotalDrones,
		ActiveDrones: status.ActiveDrones,
		Detections:   m.manager.SwarmDetections(),
	})
}

func fleetWriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fleetWriteError(w http.ResponseWriter, status int, msg string) {
	fleetWriteJSON(w, status, map[string]string{"error": msg})
}
