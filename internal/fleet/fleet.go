// Package fleet implements the drones module: fleet state, battery and
// position monitoring, and return-to-home handling.
package fleet

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Compile-time interface guards.
var (
	_ plugin.Module       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// Module implements the drone fleet module.
type Module struct {
	logger  *zap.Logger
	cfg     Config
	manager *Manager
}

// New creates a new drones module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.ModuleInfo {
	return plugin.ModuleInfo{
		Name:        "drones",
		Version:     "0.1.0",
		Description: "Drone fleet management and return-to-home",
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("parse drones config: %w", err)
		}
	}
	if m.cfg.ReturnSpeedMPS <= 0 {
		return fmt.Errorf("drones config: return_speed_mps must be positive")
	}

	m.manager = NewManager(m.cfg, deps.Bus, m.logger)
	if m.cfg.SeedFleet {
		for _, d := range seedDrones() {
			m.manager.AddDrone(d)
		}
	}
	m.logger.Info("drones module initialized", zap.Bool("seeded", m.cfg.SeedFleet))
	return nil
}

func (m *Module) Start(ctx context.Context) error {
	// The loops are tied to the module lifetime, not the Start call's ctx.
	m.manager.Start(context.Background())
	m.logger.Info("drones module started")
	return nil
}

func (m *Module) Stop(ctx context.Context) error {
	if m.manager != nil {
		m.manager.Stop()
	}
	m.logger.Info("drones module stopped")
	return nil
}

// Manager exposes the fleet manager for in-process consumers.
func (m *Module) Manager() *Manager {
	return m.manager
}

// RegisterRoutes mounts the legacy swarm detections view, which predates
// the module route prefix and lives outside /api/drones.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/detections/swarm", m.handleSwarmDetections)
}
