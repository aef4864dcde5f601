package jamming

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/jamming-status", Handler: m.handleStatus},
		{Method: "POST", Path: "/start-monitoring", Handler: m.handleStartMonitoring},
		{Method: "POST", Path: "/stop-monitoring", Handler: m.handleStopMonitoring},
		{Method: "POST", Path: "/test-jamming", Handler: m.handleTestJamming},
	}
}

// StatusResponse wraps the status document in the envelope the dashboard
// consumes.
type StatusResponse struct {
	AntiJammingStatus StatusDocument `json:"anti_jamming_status"`
	Timestamp         time.Time      `json:"timestamp"`
}

// ActionResponse acknowledges a monitoring control action.
type ActionResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status" example:"success"`
	Timestamp time.Time `json:"timestamp"`
}

// TestResponse reports the outcome of a detection test.
type TestResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	TestEvent *Event    `json:"test_event,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// handleStatus returns the current anti-jamming status document.
//
//	@Summary		Jamming status
//	@Description	Returns the monitor's current status document.
//	@Tags			security
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/security/jamming-status [get]
func (m *Module) handleStatus(w http.ResponseWriter, r *http.Request) {
	jammingWriteJSON(w, http.StatusOK, StatusResponse{
		AntiJammingStatus: m.monitor.Status(),
		Timestamp:         time.Now(),
	})
}

// handleStartMonitoring starts the sampling loops. Idempotent.
//
//	@Summary		Start monitoring
//	@Description	Activates the anti-jamming sampling and probing loops.
//	@Tags			security
//	@Produce		json
//	@Success		200	{object}	ActionResponse
//	@Router			/security/start-monitoring [post]
func (m *Module) handleStartMonitoring(w http.ResponseWriter, r *http.Request) {
	m.monitor.Start(m.runCtx)
	jammingWriteJSON(w, http.StatusOK, ActionResponse{
		Message:   "Anti-jamming system activated",
		Status:    "success",
		Timestamp: time.Now(),
	})
}

// handleStopMonitoring stops the sampling loops. Idempotent.
//
//	@Summary		Stop monitoring
//	@Description	Deactivates the anti-jamming sampling and probing loops.
//	@Tags			security
//	@Produce		json
//	@Success		200	{object}	ActionResponse
//	@Router			/security/stop-monitoring [post]
func (m *Module) handleStopMonitoring(w http.ResponseWriter, r *http.Request) {
	m.monitor.Stop()
	jammingWriteJSON(w, http.StatusOK, ActionResponse{
		Message:   "Anti-jamming system deactivated",
		Status:    "success",
		Timestamp: time.Now(),
	})
}

// handleTestJamming injects a synthetic jamming event.
//
//	@Summary		Test jamming detection
//	@Description	Fires a synthetic MEDIUM jamming event through the detection path.
//	@Tags			security
//	@Produce		json
//	@Success		200	{object}	TestResponse
//	@Router			/security/test-jamming [post]
func (m *Module) handleTestJamming(w http.ResponseWriter, r *http.Request) {
	event, ok := m.monitor.InjectTestEvent()
	resp := TestResponse{
		Status:    "success",
		Timestamp: time.Now(),
	}
	if ok {
		resp.Message = "Jamming detection test completed"
		resp.TestEvent = &event
	} else {
		resp.Message = "Jamming already detected; test event suppressed"
	}
	jammingWriteJSON(w, http.StatusOK, resp)
}

func jammingWriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
