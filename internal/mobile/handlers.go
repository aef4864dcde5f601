package mobile

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aashishh4323/Guard-X/internal/alerts"
	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

const dashboardCacheKey = "mobile.dashboard"

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/dashboard", Handler: m.handleDashboard},
		{Method: "POST", Path: "/alert", Handler: m.handleAlert},
	}
}

// Dashboard is the aggregated document for the companion app.
type Dashboard struct {
	ActiveThreats []alerts.Record `json:"active_threats"`
	PatrolStatus  PatrolStatus    `json:"patrol_status"`
	SystemHealth  SystemHealth    `json:"system_health"`
	QuickActions  []QuickAction   `json:"quick_actions"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// PatrolStatus summarizes the fleet for the dashboard.
type PatrolStatus struct {
	TotalDrones     int  `json:"total_drones"`
	ActiveDrones    int  `json:"active_drones"`
	ReturningDrones int  `json:"returning_drones"`
	Monitoring      bool `json:"monitoring"`
}

// SystemHealth summarizes station health for the dashboard.
type SystemHealth struct {
	Monitoring      bool    `json:"monitoring"`
	JammingDetected bool    `json:"jamming_detected"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
}

// QuickAction is one action button offered by the app.
type QuickAction struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// handleDashboard returns the aggregated dashboard, cached for a short TTL.
//
//	@Summary		Mobile dashboard
//	@Description	Returns active threats, patrol status, system health and quick actions.
//	@Tags			mobile
//	@Produce		json
//	@Success		200	{object}	Dashboard
//	@Router			/mobile/dashboard [get]
func (m *Module) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if m.cache != nil {
		if cached, ok := m.cache.Get(dashboardCacheKey); ok {
			if dash, ok := cached.(Dashboard); ok {
				mobileWriteJSON(w, http.StatusOK, dash)
				return
			}
		}
	}

	dash := m.buildDashboard()
	if m.cache != nil {
		m.cache.Set(dashboardCacheKey, dash)
	}
	mobileWriteJSON(w, http.StatusOK, dash)
}

func (m *Module) buildDashboard() Dashboard {
	dash := Dashboard{
		ActiveThreats: []alerts.Record{},
		GeneratedAt:   time.Now(),
		QuickActions: []QuickAction{
			{ID: "emergency_rth", Label: "Emergency RTH All", Method: "POST", Path: "/api/drones/emergency-rth-all"},
			{ID: "start_monitoring", Label: "Start Anti-Jamming", Method: "POST", Path: "/api/security/start-monitoring"},
			{ID: "test_jamming", Label: "Test Jamming Detection", Method: "POST", Path: "/api/security/test-jamming"},
		},
	}

	if m.alerts != nil {
		// Critical and high alerts are the app's "active threats".
		dash.ActiveThreats = append(m.alerts.List("critical"), m.alerts.List("high")...)
	}
	if m.fleet != nil {
		status := m.fleet.Status()
		dash.PatrolStatus = PatrolStatus{
			TotalDrones:     status.TotalDrones,
			ActiveDrones:    status.ActiveDrones,
			ReturningDrones: status.ReturningDrones,
			Monitoring:      status.Monitoring,
		}
	}
	if m.security != nil {
		doc := m.security.Status()
		dash.SystemHealth = SystemHealth{
			Monitoring:      doc.Monitoring,
			JammingDetected: doc.JammingDetected,
		}
	}
	if !m.startedAt.IsZero() {
		dash.SystemHealth.UptimeSeconds = time.Since(m.startedAt).Seconds()
	}
	return dash
}

// handleAlert reports the app's push capabilities.
//
//	@Summary		Mobile capabilities
//	@Description	Reports which push channels the station supports.
//	@Tags			mobile
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Router			/mobile/alert [post]
func (m *Module) handleAlert(w http.ResponseWriter, r *http.Request) {
	mobileWriteJSON(w, http.StatusOK, map[string]bool{
		"push_notifications": true,
		"real_time_updates":  true,
		"offline_capability": true,
	})
}

func mobileWriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
