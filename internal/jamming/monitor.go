package jamming

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

var (
	jammingDetectedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "guardx_jamming_detected",
		Help: "Whether a jamming condition is currently latched (1) or not (0).",
	})
	packetLossGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "guardx_packet_loss_percent",
		Help: "Packet loss percentage from the most recent probe round.",
	})
)

func init() {
	prometheus.MustRegister(jammingDetectedGauge)
	prometheus.MustRegister(packetLossGauge)
}

// Monitor runs the signal sampling and network probing loops and maintains
// the status document served by the security endpoints.
type Monitor struct {
	cfg     Config
	prober  Prober
	signals SignalSource
	bus     plugin.Publisher
	logger  *zap.Logger

	mu         sync.Mutex
	running    bool
	detected   bool
	channel    string
	history    []SignalReading
	latest     map[string]float64
	health     *NetworkHealth
	lastUpdate time.Time
	clearTimer *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor creates a monitor. The prober and signal source are injected so
// tests can substitute deterministic ones.
func NewMonitor(cfg Config, prober Prober, signals SignalSource, bus plugin.Publisher, logger *zap.Logger) *Monitor {
	return &Monitor{
		cfg:     cfg,
		prober:  prober,
		signals: signals,
		bus:     bus,
		logger:  logger,
		channel: ChannelWiFi,
		latest:  make(map[string]float64),
	}
}

// Start spawns the sampling loops on the given context. Calling Start while
// already running is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(2)
	go m.sampleLoop()
	go m.probeLoop()

	m.logger.Info("anti-jamming monitoring started",
		zap.Duration("sample_interval", m.cfg.SampleInterval),
		zap.Duration("probe_interval", m.cfg.ProbeInterval),
	)
}

// Stop cancels the loops and waits for them to exit. Calling Stop while
// stopped is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
	m.logger.Info("anti-jamming monitoring stopped")
}

// Running reports whether the monitoring loops are active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Status returns a snapshot of the monitor state. Maps and slices are copied
// so callers never observe a partial update.
func (m *Monitor) Status() StatusDocument {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := StatusDocument{
		Monitoring:      m.running,
		JammingDetected: m.detected,
		CurrentChannel:  m.channel,
		LastUpdate:      m.lastUpdate,
	}
	if len(m.latest) > 0 {
		doc.SignalStrength = make(map[string]float64, len(m.latest))
		for ch, v := range m.latest {
			doc.SignalStrength[ch] = v
		}
	}
	if m.health != nil {
		h := *m.health
		h.Targets = append([]TargetResult(nil), m.health.Targets...)
		doc.NetworkHealth = &h
	}
	return doc
}

// InjectTestEvent pushes a synthetic event through the same path as a real
// detection. Returns the event, or false if a detection is already latched.
func (m *Monitor) InjectTestEvent() (Event, bool) {
	return m.raise("test", map[string]any{"test_mode": true}, 40)
}

// sampleLoop reads per-channel signal strength on every tick and checks the
// recent window for a sudden drop.
func (m *Monitor) sampleLoop() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.cfg.SampleInterval)
	defer ticker.Stop()

	m.sampleOnce()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.sampleOnce()
		}
	}
}

func (m *Monitor) sampleOnce() {
	reading := SignalReading{
		Timestamp: time.Now(),
		Channels:  m.signals.Sample(m.ctx),
	}

	m.mu.Lock()
	m.history = append(m.history, reading)
	if len(m.history) > m.cfg.HistorySize {
		m.history = m.history[1:]
	}
	for ch, v := range reading.Channels {
		m.latest[ch] = v
	}
	m.lastUpdate = reading.Timestamp
	recentAvg, olderAvg, ok := m.windowMeans()
	m.mu.Unlock()

	if !ok || olderAvg == 0 {
		return
	}

	// Signal-level values grow as the signal weakens, so a weakening link
	// shows as the recent mean rising above the older one.
	dropPercent := (recentAvg - olderAvg) / olderAvg * 100
	if dropPercent > m.cfg.SignalDropThreshold {
		m.raise("signal_drop", map[string]any{
			"drop_percent": dropPercent,
			"recent_avg":   recentAvg,
			"older_avg":    olderAvg,
		}, dropPercent/10)
	}
}

// windowMeans returns the mean WiFi level of the newest five readings and of
// the five before them. ok is false until ten readings exist.
// Caller holds m.mu.
func (m *Monitor) windowMeans() (recent, older float64, ok bool) {
	if len(m.history) < 10 {
		return 0, 0, false
	}
	mean := func(readings []SignalReading) (float64, int) {
		var sum float64
		var n int
		for _, r := range readings {
			if v, present := r.Channels[ChannelWiFi]; present {
				sum += v
				n++
			}
		}
		return sum, n
	}
	rsum, rn := mean(m.history[len(m.history)-5:])
	osum, on := mean(m.history[len(m.history)-10 : len(m.history)-5])
	if rn == 0 || on == 0 {
		return 0, 0, false
	}
	return rsum / float64(rn), osum / float64(on), true
}

// probeLoop pings the reference targets on every tick and derives packet
// loss for the network-health section.
func (m *Monitor) probeLoop() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.cfg.ProbeInterval)
	defer ticker.Stop()

	m.probeOnce()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.probeOnce()
		}
	}
}

func (m *Monitor) probeOnce() {
	targets := m.cfg.ProbeTargets
	if len(targets) == 0 {
		return
	}

	results := make([]TargetResult, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			reachable, rtt := m.prober.Probe(m.ctx, target)
			results[i] = TargetResult{Target: target, Connected: reachable}
			if reachable {
				results[i].ResponseTime = float64(rtt.Microseconds()) / 1000.0
			}
		}(i, target)
	}
	wg.Wait()

	var reached int
	var rttSum float64
	for _, r := range results {
		if r.Connected {
			reached++
			rttSum += r.ResponseTime
		}
	}
	loss := float64(len(targets)-reached) / float64(len(targets)) * 100
	var avgRTT float64
	if reached > 0 {
		avgRTT = rttSum / float64(reached)
	}

	m.mu.Lock()
	m.health = &NetworkHealth{
		Timestamp:     time.Now(),
		PacketLoss:    loss,
		AvgResponseMS: avgRTT,
		Targets:       results,
	}
	m.lastUpdate = m.health.Timestamp
	m.mu.Unlock()

	packetLossGauge.Set(loss)

	if loss > m.cfg.PacketLossThreshold {
		m.raise("network", map[string]any{
			"packet_loss": loss,
			"threshold":   m.cfg.PacketLossThreshold,
		}, loss/5)
	}
}

// raise latches a jamming detection and publishes it on the bus. While a
// detection is latched, further triggers are ignored; the latch clears after
// the configured cooldown.
func (m *Monitor) raise(eventType string, details map[string]any, score float64) (Event, bool) {
	m.mu.Lock()
	if m.detected {
		m.mu.Unlock()
		return Event{}, false
	}
	m.detected = true
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Severity:  severityForScore(score),
		Details:   details,
		Timestamp: time.Now(),
	}
	m.lastUpdate = event.Timestamp
	// The cooldown timer runs independently of the loop context so a latch
	// never outlives its window, even across Stop.
	m.clearTimer = time.AfterFunc(m.cfg.DetectionCooldown, m.clearDetection)
	m.mu.Unlock()

	jammingDetectedGauge.Set(1)
	m.logger.Warn("jamming detected",
		zap.String("type", event.Type),
		zap.String("severity", string(event.Severity)),
		zap.Any("details", details),
	)
	m.publish(TopicJammingDetected, event)
	return event, true
}

func (m *Monitor) clearDetection() {
	m.mu.Lock()
	m.detected = false
	m.clearTimer = nil
	m.lastUpdate = time.Now()
	m.mu.Unlock()

	jammingDetectedGauge.Set(0)
	m.logger.Info("jamming condition cleared")
	m.publish(TopicJammingCleared, nil)
}

func (m *Monitor) publish(topic string, payload any) {
	if m.bus == nil {
		return
	}
	evt := plugin.Event{
		Topic:     topic,
		Source:    "security",
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if err := m.bus.Publish(context.Background(), evt); err != nil {
		m.logger.Warn("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
