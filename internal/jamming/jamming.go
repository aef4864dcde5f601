// Package jamming implements the security module: it samples signal
// strength, probes reference targets for packet loss, and latches a
// jamming detection when either crosses its threshold.
package jamming

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Compile-time interface guards.
var (
	_ plugin.Module       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// Module implements the security monitoring module.
type Module struct {
	logger  *zap.Logger
	cfg     Config
	monitor *Monitor

	runCtx    context.Context
	runCancel context.CancelFunc
}

// New creates a new security module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.ModuleInfo {
	return plugin.ModuleInfo{
		Name:        "security",
		Version:     "0.1.0",
		Description: "Anti-jamming detection and signal monitoring",
		Required:    true,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("parse security config: %w", err)
		}
	}
	if len(m.cfg.ProbeTargets) == 0 {
		return fmt.Errorf("security config: at least one probe target is required")
	}

	m.monitor = NewMonitor(
		m.cfg,
		NewICMPProber(m.cfg, m.logger),
		NewPlatformSignalSource(),
		deps.Bus,
		m.logger,
	)
	m.logger.Info("security module initialized",
		zap.Strings("probe_targets", m.cfg.ProbeTargets))
	return nil
}

func (m *Module) Start(ctx context.Context) error {
	// Monitoring is operator-controlled: loops run only after
	// POST /api/security/start-monitoring. The run context outlives the
	// Start call so HTTP-triggered loops are tied to the module lifetime.
	m.runCtx, m.runCancel = context.WithCancel(context.Background())
	m.logger.Info("security module started")
	return nil
}

func (m *Module) Stop(ctx context.Context) error {
	if m.monitor != nil {
		m.monitor.Stop()
	}
	if m.runCancel != nil {
		m.runCancel()
	}
	m.logger.Info("security module stopped")
	return nil
}

// Monitor exposes the underlying monitor for in-process consumers
// (mobile dashboard, websocket hub).
func (m *Module) Monitor() *Monitor {
	return m.monitor
}
