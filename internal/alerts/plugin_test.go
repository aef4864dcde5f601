package alerts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/internal/fleet"
	"github.com/aashishh4323/Guard-X/internal/jamming"
	"github.com/aashishh4323/Guard-X/pkg/plugin"
	"github.com/aashishh4323/Guard-X/pkg/plugin/plugintest"
)

func TestModuleContract(t *testing.T) {
	plugintest.TestModuleContract(t, func() plugin.Module { return New() })
}

func newInitModule(t *testing.T) *Module {
	t.Helper()
	m := New()
	if err := m.Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return m
}

func TestSubscriptions_CoverSourceTopics(t *testing.T) {
	m := newInitModule(t)

	subs := m.Subscriptions()
	if len(subs) != 2 {
		t.Fatalf("Subscriptions() returned %d, want 2", len(subs))
	}

	topics := map[string]bool{}
	for _, s := range subs {
		if s.Handler == nil {
			t.Errorf("subscription %q has nil handler", s.Topic)
		}
		topics[s.Topic] = true
	}
	if !topics[jamming.TopicJammingDetected] {
		t.Errorf("missing subscription for %s", jamming.TopicJammingDetected)
	}
	if !topics[fleet.TopicDroneAlert] {
		t.Errorf("missing subscription for %s", fleet.TopicDroneAlert)
	}
}

func TestOnJammingDetected_CreatesRecord(t *testing.T) {
	m := newInitModule(t)

	m.onJammingDetected(context.Background(), plugin.Event{
		Topic: jamming.TopicJammingDetected,
		Payload: jamming.Event{
			ID:        "evt-1",
			Type:      "network",
			Severity:  jamming.SeverityHigh,
			Timestamp: time.Now(),
		},
	})

	records := m.store.List("high")
	if len(records) != 1 {
		t.Fatalf("List(high) returned %d, want 1", len(records))
	}
	if records[0].ID != "evt-1" {
		t.Errorf("record ID = %q, want evt-1", records[0].ID)
	}
	if records[0].Title != "Jamming Detected" {
		t.Errorf("record Title = %q", records[0].Title)
	}
}

func TestOnDroneAlert_CreatesRecord(t *testing.T) {
	m := newInitModule(t)

	m.onDroneAlert(context.Background(), plugin.Event{
		Topic: fleet.TopicDroneAlert,
		Payload: fleet.Alert{
			Type:      "emergency_rth",
			DroneID:   "GUARD-02",
			Battery:   9.5,
			Severity:  "CRITICAL",
			Timestamp: time.Now(),
		},
	})

	records := m.store.List("critical")
	if len(records) != 1 {
		t.Fatalf("List(critical) returned %d, want 1", len(records))
	}
	if records[0].Location != "GUARD-02" {
		t.Errorf("record Location = %q, want GUARD-02", records[0].Location)
	}
}

func TestOnEvent_IgnoresBadPayload(t *testing.T) {
	m := newInitModule(t)

	m.onJammingDetected(context.Background(), plugin.Event{Payload: "not an event"})
	m.onDroneAlert(context.Background(), plugin.Event{Payload: 42})

	if m.store.Len() != 0 {
		t.Errorf("store has %d records after bad payloads, want 0", m.store.Len())
	}
}

func TestHandleList_DefaultsToAll(t *testing.T) {
	m := newInitModule(t)
	m.store.Add(Record{Title: "a", Level: LevelCritical})
	m.store.Add(Record{Title: "b", Level: LevelLow})

	w := httptest.NewRecorder()
	m.handleList(w, httptest.NewRequest("GET", "/", http.NoBody))

	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || resp.Filter != "all" {
		t.Errorf("resp = %+v, want total 2 filter all", resp)
	}
}

func TestHandleList_FiltersByLevel(t *testing.T) {
	m := newInitModule(t)
	m.store.Add(Record{Title: "a", Level: LevelCritical})
	m.store.Add(Record{Title: "b", Level: LevelLow})

	w := httptest.NewRecorder()
	m.handleList(w, httptest.NewRequest("GET", "/?level=CRITICAL", http.NoBody))

	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Alerts[0].Title != "a" {
		t.Errorf("resp = %+v, want only the critical alert", resp)
	}
}

func TestHandleDismiss(t *testing.T) {
	m := newInitModule(t)
	m.store.Add(Record{Title: "a", Level: LevelLow})

	req := httptest.NewRequest("DELETE", "/0", http.NoBody)
	req.SetPathValue("index", "0")
	w := httptest.NewRecorder()
	m.handleDismiss(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if m.store.Len() != 0 {
		t.Errorf("store has %d records after dismiss, want 0", m.store.Len())
	}

	// Out of range now.
	req = httptest.NewRequest("DELETE", "/0", http.NoBody)
	req.SetPathValue("index", "0")
	w = httptest.NewRecorder()
	m.handleDismiss(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d for empty store, want %d", w.Code, http.StatusNotFound)
	}

	// Non-numeric index.
	req = httptest.NewRequest("DELETE", "/abc", http.NoBody)
	req.SetPathValue("index", "abc")
	w = httptest.NewRecorder()
	m.handleDismiss(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bad index, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleAcknowledge_Returns501(t *testing.T) {
	m := newInitModule(t)
	m.store.Add(Record{Title: "a", Level: LevelLow})

	req := httptest.NewRequest("POST", "/0/ack", http.NoBody)
	req.SetPathValue("index", "0")
	w := httptest.NewRecorder()
	m.handleAcknowledge(w, req)

	if w.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotImplemented)
	}
	if m.store.Len() != 1 {
		t.Errorf("store mutated by acknowledge, len = %d, want 1", m.store.Len())
	}

	req = httptest.NewRequest("POST", "/9/ack", http.NoBody)
	req.SetPathValue("index", "9")
	w = httptest.NewRecorder()
	m.handleAcknowledge(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d for out-of-range index, want %d", w.Code, http.StatusNotFound)
	}
}
