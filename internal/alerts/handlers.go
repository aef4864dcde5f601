package alerts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: m.handleList},
		{Method: "DELETE", Path: "/{index}", Handler: m.handleDismiss},
		{Method: "POST", Path: "/{index}/ack", Handler: m.handleAcknowledge},
	}
}

// ListResponse wraps the alert list.
type ListResponse struct {
	Alerts []Record `json:"alerts"`
	Total  int      `json:"total"`
	Filter string   `json:"filter"`
}

// handleList returns alerts, optionally filtered by level.
//
//	@Summary		List alerts
//	@Description	Returns alerts in arrival order, optionally filtered by level.
//	@Tags			alerts
//	@Produce		json
//	@Param			level	query	string	false	"all, critical, high, medium or low"	default(all)
//	@Success		200	{object}	ListResponse
//	@Router			/alerts [get]
func (m *Module) handleList(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("level")
	if filter == "" {
		filter = "all"
	}
	records := m.store.List(filter)
	alertsWriteJSON(w, http.StatusOK, ListResponse{
		Alerts: records,
		Total:  len(records),
		Filter: filter,
	})
}

// handleDismiss removes one alert by its position in the unfiltered list.
//
//	@Summary		Dismiss alert
//	@Description	Removes the alert at the given index; remaining alerts keep their order.
//	@Tags			alerts
//	@Param			index	path	int	true	"Alert index"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/alerts/{index} [delete]
func (m *Module) handleDismiss(w http.ResponseWriter, r *http.Request) {
	index, ok := alertIndex(w, r)
	if !ok {
		return
	}
	if err := m.store.Dismiss(index); err != nil {
		alertsWriteError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAcknowledge always returns 501: acknowledgment is deliberately
// unimplemented until its semantics are defined.
//
//	@Summary		Acknowledge alert
//	@Description	Not implemented; always returns 501.
//	@Tags			alerts
//	@Param			index	path	int	true	"Alert index"
//	@Failure		404	{object}	map[string]string
//	@Failure		501	{object}	map[string]string
//	@Router			/alerts/{index}/ack [post]
func (m *Module) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	index, ok := alertIndex(w, r)
	if !ok {
		return
	}
	err := m.store.Acknowledge(index)
	switch {
	case errors.Is(err, ErrIndexOutOfRange):
		alertsWriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotImplemented):
		alertsWriteError(w, http.StatusNotImplemented, err.Error())
	default:
		alertsWriteError(w, http.StatusInternalServerError, "unexpected acknowledge result")
	}
}

func alertIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		alertsWriteError(w, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return index, true
}

func alertsWriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func alertsWriteError(w http.ResponseWriter, status int, msg string) {
	alertsWriteJSON(w, status, map[string]string{"error": msg})
}
