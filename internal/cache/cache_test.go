package cache

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
	"github.com/aashishh4323/Guard-X/pkg/plugin/plugintest"
)

func TestModuleContract(t *testing.T) {
	plugintest.TestModuleContract(t, func() plugin.Module { return New() })
}

func TestTTLCache_GetSet(t *testing.T) {
	stats := NewStats()
	c := NewTTLCache(time.Minute, 10, stats)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get(k) = (%v, %v), want (v, true)", got, ok)
	}

	snap := stats.Snapshot()
	if snap.Hits != 1 || snap.Misses != 1 || snap.TotalRequests != 2 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 2 total", snap)
	}
	if snap.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", snap.HitRate)
	}
}

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTLCache(time.Minute, 10, nil)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("k", "v")

	// Advance past the TTL.
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("Get(k) ok = true past TTL, want false")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expired access, want 0", c.Len())
	}
}

func TestTTLCache_SweepsExpiredAtBound(t *testing.T) {
	c := NewTTLCache(time.Minute, 2, nil)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	c.Set("b", 2)

	// Both expire, then a write at the bound sweeps them.
	now = now.Add(2 * time.Minute)
	c.Set("c", 3)

	if c.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", c.Len())
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("Get(c) ok = false, want true")
	}
}

func TestStats_EmptyHitRate(t *testing.T) {
	snap := NewStats().Snapshot()
	if snap.HitRate != 0 {
		t.Errorf("HitRate = %v with no requests, want 0", snap.HitRate)
	}
}

func newInitModule(t *testing.T) *Module {
	t.Helper()
	m := New()
	if err := m.Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return m
}

func TestHandleStats(t *testing.T) {
	m := newInitModule(t)
	m.detections.Set("d1", "x")
	m.detections.Get("d1")
	m.frames.Get("missing")

	w := httptest.NewRecorder()
	m.handleStats(w, httptest.NewRequest("GET", "/stats", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var snap Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Hits != 1 || snap.Misses != 1 {
		t.Errorf("snapshot = %+v, want 1 hit / 1 miss", snap)
	}
	if snap.CacheSizes["detections"] != 1 {
		t.Errorf("CacheSizes[detections] = %d, want 1", snap.CacheSizes["detections"])
	}
}

func TestHandleClear(t *testing.T) {
	m := newInitModule(t)
	m.detections.Set("d1", "x")
	m.frames.Set("f1", "y")

	w := httptest.NewRecorder()
	m.handleClear(w, httptest.NewRequest("POST", "/clear", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if m.detections.Len() != 0 || m.frames.Len() != 0 {
		t.Error("caches not empty after clear")
	}
}
