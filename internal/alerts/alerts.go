// Package alerts implements the alerts module: a bounded, arrival-ordered
// alert store fed by bus events from the security and drones modules.
package alerts

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/internal/fleet"
	"github.com/aashishh4323/Guard-X/internal/jamming"
	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Compile-time interface guards.
var (
	_ plugin.Module          = (*Module)(nil)
	_ plugin.HTTPProvider    = (*Module)(nil)
	_ plugin.EventSubscriber = (*Module)(nil)
)

type Config struct {
	MaxAlerts int `mapstructure:"max_alerts"`
}

func DefaultConfig() Config {
	return Config{MaxAlerts: 500}
}

// Module implements the alerts module.
type Module struct {
	logger *zap.Logger
	cfg    Config
	store  *Store
}

// New creates a new alerts module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.ModuleInfo {
	return plugin.ModuleInfo{
		Name:        "alerts",
		Version:     "0.1.0",
		Description: "Operator alert store",
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("parse alerts config: %w", err)
		}
	}

	m.store = NewStore(m.cfg.MaxAlerts)
	m.logger.Info("alerts module initialized", zap.Int("max_alerts", m.cfg.MaxAlerts))
	return nil
}

func (m *Module) Start(ctx context.Context) error {
	m.logger.Info("alerts module started")
	return nil
}

func (m *Module) Stop(ctx context.Context) error {
	m.logger.Info("alerts module stopped")
	return nil
}

// Store exposes the alert store for in-process consumers.
func (m *Module) Store() *Store {
	return m.store
}

// Subscriptions implements plugin.EventSubscriber: jamming detections and
// fleet alerts become operator alert records.
func (m *Module) Subscriptions() []plugin.Subscription {
	return []plugin.Subscription{
		{Topic: jamming.TopicJammingDetected, Handler: m.onJammingDetected},
		{Topic: fleet.TopicDroneAlert, Handler: m.onDroneAlert},
	}
}

func (m *Module) onJammingDetected(_ context.Context, event plugin.Event) {
	je, ok := event.Payload.(jamming.Event)
	if !ok {
		m.logger.Warn("unexpected payload on jamming topic",
			zap.String("topic", event.Topic))
		return
	}
	m.store.Add(Record{
		ID:          je.ID,
		Level:       ParseLevel(string(je.Severity)),
		Title:       "Jamming Detected",
		Description: fmt.Sprintf("Jamming condition detected (%s)", je.Type),
		Timestamp:   je.Timestamp,
	})
}

func (m *Module) onDroneAlert(_ context.Context, event plugin.Event) {
	fa, ok := event.Payload.(fleet.Alert)
	if !ok {
		m.logger.Warn("unexpected payload on drone alert topic",
			zap.String("topic", event.Topic))
		return
	}

	var title, description string
	switch fa.Type {
	case "emergency_rth":
		title = "Emergency Return to Home"
		description = fmt.Sprintf("%s returning at emergency speed, battery %.1f%%", fa.DroneID, fa.Battery)
	case "auto_rth":
		title = "Return to Home"
		description = fmt.Sprintf("%s returning home, battery %.1f%%", fa.DroneID, fa.Battery)
	case "drone_landed":
		title = "Drone Landed"
		description = fmt.Sprintf("%s landed at home base", fa.DroneID)
	default:
		title = "Fleet Alert"
		description = fmt.Sprintf("%s: %s", fa.DroneID, fa.Type)
	}

	m.store.Add(Record{
		Level:       ParseLevel(fa.Severity),
		Title:       title,
		Description: description,
		Timestamp:   fa.Timestamp,
		Location:    fa.DroneID,
	})
}
