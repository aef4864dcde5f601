package fleet

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// ErrDroneNotFound is returned by commands targeting an unknown drone.
var ErrDroneNotFound = errors.New("drone not found")

var activeDronesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "guardx_active_drones",
	Help: "Number of drones currently in the active state.",
})

func init() {
	prometheus.MustRegister(activeDronesGauge)
}

// Manager owns the drone fleet: battery and position loops, return-to-home
// commands, and the simulated return journeys.
type Manager struct {
	cfg    Config
	bus    plugin.Publisher
	logger *zap.Logger

	mu      sync.Mutex
	drones  map[string]*Drone
	running bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager creates a fleet manager with an empty fleet.
func NewManager(cfg Config, bus plugin.Publisher, logger *zap.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		bus:    bus,
		logger: logger,
		drones: make(map[string]*Drone),
	}
}

// AddDrone registers a drone. An existing drone with the same ID is replaced.
func (f *Manager) AddDrone(d Drone) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := d
	f.drones[d.ID] = &copied
}

// Start spawns the monitoring loops. No-op when already running.
func (f *Manager) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return
	}
	f.running = true
	f.ctx, f.cancel = context.WithCancel(ctx)

	f.wg.Add(2)
	go f.batteryLoop()
	go f.positionLoop()

	f.logger.Info("fleet monitoring started", zap.Int("drones", len(f.drones)))
}

// Stop cancels the loops and any in-flight return journeys.
func (f *Manager) Stop() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	cancel := f.cancel
	f.mu.Unlock()

	cancel()
	f.wg.Wait()
	f.logger.Info("fleet monitoring stopped")
}

// Status returns a snapshot of the fleet.
func (f *Manager) Status() FleetStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := FleetStatus{
		Drones:     make(map[string]Drone, len(f.drones)),
		Monitoring: f.running,
	}
	for id, d := range f.drones {
		status.Drones[id] = *d
		status.TotalDrones++
		if d.Status == StatusActive {
			status.ActiveDrones++
		}
		if d.ReturningHome {
			status.ReturningDrones++
		}
		if d.Battery <= f.cfg.RTHThreshold {
			status.LowBatteryDrones++
		}
	}
	return status
}

// SwarmDetections returns the per-drone detection view.
func (f *Manager) SwarmDetections() []SwarmDetection {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]SwarmDetection, 0, len(f.drones))
	for _, d := range f.drones {
		detection := d.Detection
		if detection == "" {
			detection = "Clear"
		}
		out = append(out, SwarmDetection{
			DroneID:       d.ID,
			Lat:           d.Lat,
			Lon:           d.Lon,
			Alt:           d.Alt,
			Battery:       d.Battery,
			Status:        d.Status,
			Detection:     detection,
			Confidence:    d.Confidence,
			ReturningHome: d.ReturningHome,
			RTHReason:     d.RTHReason,
		})
	}
	return out
}

// ManualRTH commands one drone home. Returns ErrDroneNotFound for an
// unknown ID.
func (f *Manager) ManualRTH(id string) error {
	f.mu.Lock()
	d, ok := f.drones[id]
	if !ok {
		f.mu.Unlock()
		return ErrDroneNotFound
	}
	battery := d.Battery
	f.mu.Unlock()

	f.initiateRTH(id, battery, false)
	return nil
}

// EmergencyRTHAll commands every active drone home at emergency speed and
// returns how many were commanded.
func (f *Manager) EmergencyRTHAll() int {
	f.mu.Lock()
	type target struct {
		id      string
		battery float64
	}
	var targets []target
	for id, d := range f.drones {
		if d.Status == StatusActive {
			targets = append(targets, target{id, d.Battery})
		}
	}
	f.mu.Unlock()

	for _, t := range targets {
		f.initiateRTH(t.id, t.battery, true)
	}
	return len(targets)
}

// batteryLoop drains flying drones, charges landed ones, and triggers RTH
// at the low and critical thresholds.
func (f *Manager) batteryLoop() {
	defer f.wg.Done()
	ticker := time.NewTicker(f.cfg.BatteryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			f.batteryTick()
		}
	}
}

func (f *Manager) batteryTick() {
	type trigger struct {
		id        string
		battery   float64
		emergency bool
	}
	var triggers []trigger
	var active int

	f.mu.Lock()
	for id, d := range f.drones {
		switch d.Status {
		case StatusActive:
			active++
			switch {
			case d.Battery <= f.cfg.EmergencyThreshold:
				triggers = append(triggers, trigger{id, d.Battery, true})
			case d.Battery <= f.cfg.RTHThreshold && !d.ReturningHome:
				triggers = append(triggers, trigger{id, d.Battery, false})
			}
			if !d.ReturningHome {
				d.Battery = math.Max(0, d.Battery-0.5)
			}
		case StatusLanded:
			if d.Battery < 100 {
				d.Battery = math.Min(100, d.Battery+2.0)
			}
		}
	}
	f.mu.Unlock()

	activeDronesGauge.Set(float64(active))

	for _, t := range triggers {
		f.initiateRTH(t.id, t.battery, t.emergency)
	}
}

// positionLoop applies a small deterministic drift to active drones so the
// map shows movement.
func (f *Manager) positionLoop() {
	defer f.wg.Done()
	ticker := time.NewTicker(f.cfg.PositionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			f.mu.Lock()
			for _, d := range f.drones {
				if d.Status == StatusActive && !d.ReturningHome {
					d.Lat += 0.00001
					d.Lon -= 0.00001
				}
			}
			f.mu.Unlock()
		}
	}
}

// initiateRTH marks the drone returning, publishes the operator alert, and
// spawns the simulated return journey. Already-returning drones are left
// alone unless the new command escalates to emergency.
func (f *Manager) initiateRTH(id string, battery float64, emergency bool) {
	f.mu.Lock()
	d, ok := f.drones[id]
	if !ok || d.Status == StatusLanded {
		f.mu.Unlock()
		return
	}
	if d.ReturningHome && (!emergency || d.Emergency) {
		f.mu.Unlock()
		return
	}

	wasReturning := d.ReturningHome
	d.ReturningHome = true
	d.Status = StatusReturning
	d.Emergency = emergency
	d.RTHInitiated = time.Now()
	if emergency {
		d.RTHReason = RTHReasonCriticalBattery
	} else if battery <= f.cfg.RTHThreshold {
		d.RTHReason = RTHReasonLowBattery
	} else {
		d.RTHReason = RTHReasonManual
	}

	distance := haversineMeters(d.Lat, d.Lon, f.cfg.HomeLat, f.cfg.HomeLon)
	eta := distance / f.cfg.ReturnSpeedMPS
	if emergency {
		eta *= 0.7
	}
	startLat, startLon, startAlt := d.Lat, d.Lon, d.Alt
	// A journey already in flight keeps going; escalation only re-labels it.
	spawnJourney := !wasReturning && f.running
	if spawnJourney {
		f.wg.Add(1)
	}
	f.mu.Unlock()

	alertType := "auto_rth"
	severity := "MEDIUM"
	if emergency {
		alertType = "emergency_rth"
		severity = "CRITICAL"
	}
	f.logger.Warn("return to home initiated",
		zap.String("drone_id", id),
		zap.Float64("battery", battery),
		zap.Bool("emergency", emergency),
		zap.Float64("eta_seconds", eta),
	)
	f.publishAlert(Alert{
		Type:      alertType,
		DroneID:   id,
		Battery:   battery,
		ETA:       eta,
		Severity:  severity,
		Timestamp: time.Now(),
	})

	if spawnJourney {
		go f.returnJourney(id, startLat, startLon, startAlt, eta)
	}
}

// returnJourney interpolates the drone back to home base over the ETA in
// ten steps, descending and draining battery, then lands it.
func (f *Manager) returnJourney(id string, startLat, startLon, startAlt, etaSeconds float64) {
	defer f.wg.Done()

	const steps = 10
	stepSleep := time.Duration(etaSeconds/steps*float64(time.Second))
	if stepSleep <= 0 {
		stepSleep = 500 * time.Millisecond
	}

	for step := 1; step <= steps; step++ {
		select {
		case <-f.ctx.Done():
			return
		case <-time.After(stepSleep):
		}

		progress := float64(step) / steps
		f.mu.Lock()
		d, ok := f.drones[id]
		if !ok || !d.ReturningHome {
			f.mu.Unlock()
			return
		}
		d.Lat = startLat + (f.cfg.HomeLat-startLat)*progress
		d.Lon = startLon + (f.cfg.HomeLon-startLon)*progress
		d.Alt = math.Max(0, startAlt*(1-progress))
		d.Battery = math.Max(0, d.Battery-0.5*(1+progress))
		f.mu.Unlock()
	}

	f.landDrone(id)
}

func (f *Manager) landDrone(id string) {
	f.mu.Lock()
	d, ok := f.drones[id]
	if !ok {
		f.mu.Unlock()
		return
	}
	d.Status = StatusLanded
	d.ReturningHome = false
	d.Emergency = false
	d.Lat = f.cfg.HomeLat
	d.Lon = f.cfg.HomeLon
	d.Alt = 0
	d.LandedAt = time.Now()
	battery := d.Battery
	f.mu.Unlock()

	f.logger.Info("drone landed at home base", zap.String("drone_id", id))
	f.publishAlert(Alert{
		Type:      "drone_landed",
		DroneID:   id,
		Battery:   battery,
		Severity:  "LOW",
		Timestamp: time.Now(),
	})
}

func (f *Manager) publishAlert(alert Alert) {
	if f.bus == nil {
		return
	}
	evt := plugin.Event{
		Topic:     TopicDroneAlert,
		Source:    "drones",
		Timestamp: time.Now(),
		Payload:   alert,
	}
	if err := f.bus.Publish(context.Background(), evt); err != nil {
		f.logger.Warn("failed to publish fleet alert", zap.Error(err))
	}
}

// haversineMeters returns the great-circle distance between two coordinates.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
