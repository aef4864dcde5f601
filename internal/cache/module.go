package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Compile-time interface guards.
var (
	_ plugin.Module       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

var cacheHitRateGauge = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "guardx_cache_hit_rate",
	Help: "Cache hit rate percentage across all named caches.",
})

func init() {
	prometheus.MustRegister(cacheHitRateGauge)
}

type Config struct {
	DetectionTTL time.Duration `mapstructure:"detection_ttl"`
	FrameTTL     time.Duration `mapstructure:"frame_ttl"`
	MaxEntries   int           `mapstructure:"max_entries"`
}

func DefaultConfig() Config {
	return Config{
		DetectionTTL: 5 * time.Minute,
		FrameTTL:     time.Minute,
		MaxEntries:   1000,
	}
}

// Module implements the cache module: two named TTL caches with shared
// statistics exposed over HTTP and Prometheus.
type Module struct {
	logger *zap.Logger
	cfg    Config

	stats      *Stats
	detections *TTLCache
	frames     *TTLCache
}

// New creates a new cache module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.ModuleInfo {
	return plugin.ModuleInfo{
		Name:        "cache",
		Version:     "0.1.0",
		Description: "TTL caches with hit/miss statistics",
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("parse cache config: %w", err)
		}
	}

	m.stats = NewStats()
	m.detections = NewTTLCache(m.cfg.DetectionTTL, m.cfg.MaxEntries, m.stats)
	m.frames = NewTTLCache(m.cfg.FrameTTL, m.cfg.MaxEntries, m.stats)
	m.logger.Info("cache module initialized",
		zap.Duration("detection_ttl", m.cfg.DetectionTTL),
		zap.Duration("frame_ttl", m.cfg.FrameTTL),
	)
	return nil
}

func (m *Module) Start(ctx context.Context) error {
	m.logger.Info("cache module started")
	return nil
}

func (m *Module) Stop(ctx context.Context) error {
	m.logger.Info("cache module stopped")
	return nil
}

// Detections exposes the detection-result cache for other modules.
func (m *Module) Detections() *TTLCache {
	return m.detections
}

// Frames exposes the frame-result cache for other modules.
func (m *Module) Frames() *TTLCache {
	return m.frames
}

// Snapshot returns statistics with per-cache sizes, updating the hit-rate
// gauge on the way out.
func (m *Module) Snapshot() Snapshot {
	snap := m.stats.Snapshot()
	snap.CacheSizes = map[string]int{
		"detections": m.detections.Len(),
		"frames":     m.frames.Len(),
	}
	cacheHitRateGauge.Set(snap.HitRate)
	return snap
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/stats", Handler: m.handleStats},
		{Method: "POST", Path: "/clear", Handler: m.handleClear},
	}
}

// handleStats returns cache statistics.
//
//	@Summary		Cache statistics
//	@Description	Returns hit/miss counters, hit rate and per-cache sizes.
//	@Tags			cache
//	@Produce		json
//	@Success		200	{object}	Snapshot
//	@Router			/cache/stats [get]
func (m *Module) handleStats(w http.ResponseWriter, r *http.Request) {
	cacheWriteJSON(w, http.StatusOK, m.Snapshot())
}

// handleClear empties all caches.
//
//	@Summary		Clear caches
//	@Description	Removes all cached entries.
//	@Tags			cache
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/cache/clear [post]
func (m *Module) handleClear(w http.ResponseWriter, r *http.Request) {
	m.detections.Clear()
	m.frames.Clear()
	m.logger.Info("caches cleared")
	cacheWriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Cache cleared successfully",
		"status":    "success",
		"timestamp": time.Now(),
	})
}

func cacheWriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
