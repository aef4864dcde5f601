package mobile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/internal/alerts"
	"github.com/aashishh4323/Guard-X/internal/cache"
	"github.com/aashishh4323/Guard-X/internal/fleet"
	"github.com/aashishh4323/Guard-X/internal/jamming"
	"github.com/aashishh4323/Guard-X/pkg/plugin"
	"github.com/aashishh4323/Guard-X/pkg/plugin/plugintest"
)

func TestModuleContract(t *testing.T) {
	plugintest.TestModuleContract(t, func() plugin.Module { return New() })
}

type fakeFleet struct{ status fleet.FleetStatus }

func (f *fakeFleet) Status() fleet.FleetStatus { return f.status }

type fakeSecurity struct{ doc jamming.StatusDocument }

func (s *fakeSecurity) Status() jamming.StatusDocument { return s.doc }

type memoryCache struct {
	entries map[string]any
	gets    int
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]any{}}
}

func (c *memoryCache) Get(key string) (any, bool) {
	c.gets++
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *memoryCache) Set(key string, value any) { c.entries[key] = value }

func newWiredModule(t *testing.T) (*Module, *alerts.Store, *memoryCache) {
	t.Helper()
	m := New()
	if err := m.Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	store := alerts.NewStore(0)
	mc := newMemoryCache()
	m.alerts = store
	m.fleet = &fakeFleet{status: fleet.FleetStatus{TotalDrones: 4, ActiveDrones: 3, ReturningDrones: 1, Monitoring: true}}
	m.security = &fakeSecurity{doc: jamming.StatusDocument{Monitoring: true, JammingDetected: false}}
	m.cache = mc

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = m.Stop(context.Background()) })
	return m, store, mc
}

func TestHandleDashboard_Aggregates(t *testing.T) {
	m, store, _ := newWiredModule(t)
	store.Add(alerts.Record{Title: "intrusion", Level: alerts.LevelCritical})
	store.Add(alerts.Record{Title: "rth", Level: alerts.LevelMedium}) // not a threat

	w := httptest.NewRecorder()
	m.handleDashboard(w, httptest.NewRequest("GET", "/dashboard", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var dash Dashboard
	if err := json.NewDecoder(w.Body).Decode(&dash); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dash.ActiveThreats) != 1 || dash.ActiveThreats[0].Title != "intrusion" {
		t.Errorf("ActiveThreats = %+v, want only the critical alert", dash.ActiveThreats)
	}
	if dash.PatrolStatus.TotalDrones != 4 || dash.PatrolStatus.ActiveDrones != 3 {
		t.Errorf("PatrolStatus = %+v", dash.PatrolStatus)
	}
	if !dash.SystemHealth.Monitoring {
		t.Error("SystemHealth.Monitoring = false, want true")
	}
	if len(dash.QuickActions) == 0 {
		t.Error("QuickActions empty")
	}
}

func TestHandleDashboard_UsesCache(t *testing.T) {
	m, _, mc := newWiredModule(t)

	m.handleDashboard(httptest.NewRecorder(), httptest.NewRequest("GET", "/dashboard", http.NoBody))
	m.handleDashboard(httptest.NewRecorder(), httptest.NewRequest("GET", "/dashboard", http.NoBody))

	if mc.hits != 1 {
		t.Errorf("cache hits = %d after two requests, want 1", mc.hits)
	}
}

func TestHandleAlert_ReportsCapabilities(t *testing.T) {
	m, _, _ := newWiredModule(t)

	w := httptest.NewRecorder()
	m.handleAlert(w, httptest.NewRequest("POST", "/alert", http.NoBody))

	var caps map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&caps); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"push_notifications", "real_time_updates", "offline_capability"} {
		if !caps[key] {
			t.Errorf("capability %q = false, want true", key)
		}
	}
}

func TestHandleDashboard_NoSourcesStillServes(t *testing.T) {
	m := New()
	if err := m.Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	w := httptest.NewRecorder()
	m.handleDashboard(w, httptest.NewRequest("GET", "/dashboard", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var dash Dashboard
	if err := json.NewDecoder(w.Body).Decode(&dash); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dash.ActiveThreats == nil {
		t.Error("ActiveThreats = nil, want empty list")
	}
}

func TestDashboardCacheAdapter(t *testing.T) {
	// The adapter wraps the shared frame cache but enforces its own,
	// tighter TTL.
	backing := cache.NewTTLCache(time.Minute, 10, nil)
	c := newDashboardCache(backing, 20*time.Millisecond)

	c.Set("k", Dashboard{GeneratedAt: time.Now()})
	if _, ok := c.Get("k"); !ok {
		t.Error("Get(k) ok = false immediately after Set, want true")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Get(k) ok = true past dashboard TTL, want false")
	}
}
