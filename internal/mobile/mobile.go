// Package mobile implements the mobile module: a cached aggregation of
// alert, fleet and security state for the companion app's dashboard.
package mobile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/internal/alerts"
	"github.com/aashishh4323/Guard-X/internal/cache"
	"github.com/aashishh4323/Guard-X/internal/fleet"
	"github.com/aashishh4323/Guard-X/internal/jamming"
	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Compile-time interface guards.
var (
	_ plugin.Module       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// AlertSource provides the active alerts shown on the dashboard.
type AlertSource interface {
	List(filter string) []alerts.Record
}

// FleetSource provides patrol status.
type FleetSource interface {
	Status() fleet.FleetStatus
}

// SecuritySource provides the anti-jamming status.
type SecuritySource interface {
	Status() jamming.StatusDocument
}

// DashboardCache stores rendered dashboards between polls.
type DashboardCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

type Config struct {
	DashboardTTL time.Duration `mapstructure:"dashboard_ttl"`
}

func DefaultConfig() Config {
	return Config{DashboardTTL: 5 * time.Second}
}

// Module implements the mobile API module.
type Module struct {
	logger *zap.Logger
	cfg    Config

	alerts   AlertSource
	fleet    FleetSource
	security SecuritySource
	cache    DashboardCache

	startedAt time.Time
}

// New creates a new mobile module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.ModuleInfo {
	return plugin.ModuleInfo{
		Name:         "mobile",
		Version:      "0.1.0",
		Description:  "Aggregated dashboard for the companion app",
		Dependencies: []string{"security", "drones", "alerts", "cache"},
		APIVersion:   plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("parse mobile config: %w", err)
		}
	}

	// Resolve the source modules; declared dependencies guarantee they
	// initialized first.
	if deps.Modules != nil {
		if mod, ok := deps.Modules.Resolve("alerts"); ok {
			if am, ok := mod.(*alerts.Module); ok {
				m.alerts = am.Store()
			}
		}
		if mod, ok := deps.Modules.Resolve("drones"); ok {
			if fm, ok := mod.(*fleet.Module); ok {
				m.fleet = fm.Manager()
			}
		}
		if mod, ok := deps.Modules.Resolve("security"); ok {
			if jm, ok := mod.(*jamming.Module); ok {
				m.security = jm.Monitor()
			}
		}
		if mod, ok := deps.Modules.Resolve("cache"); ok {
			if cm, ok := mod.(*cache.Module); ok {
				m.cache = newDashboardCache(cm.Frames(), m.cfg.DashboardTTL)
			}
		}
	}

	m.logger.Info("mobile module initialized",
		zap.Duration("dashboard_ttl", m.cfg.DashboardTTL))
	return nil
}

func (m *Module) Start(ctx context.Context) error {
	m.startedAt = time.Now()
	m.logger.Info("mobile module started")
	return nil
}

func (m *Module) Stop(ctx context.Context) error {
	m.logger.Info("mobile module stopped")
	return nil
}

// dashboardCache adapts a shared TTL cache; the cache module owns the TTL,
// so entries are re-rendered at most once per its frame TTL. A tighter
// per-dashboard TTL is enforced by storing the render time alongside.
type dashboardCache struct {
	backing *cache.TTLCache
	ttl     time.Duration
}

type cachedDashboard struct {
	value    any
	rendered time.Time
}

func newDashboardCache(backing *cache.TTLCache, ttl time.Duration) *dashboardCache {
	return &dashboardCache{backing: backing, ttl: ttl}
}

func (c *dashboardCache) Get(key string) (any, bool) {
	raw, ok := c.backing.Get(key)
	if !ok {
		return nil, false
	}
	entry, ok := raw.(cachedDashboard)
	if !ok || time.Since(entry.rendered) > c.ttl {
		return nil, false
	}
	return entry.value, true
}

func (c *dashboardCache) Set(key string, value any) {
	c.backing.Set(key, cachedDashboard{value: value, rendered: time.Now()})
}
