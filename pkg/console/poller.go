package console

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RequestState tracks the lifecycle of the most recent request of a kind.
type RequestState int

const (
	StateIdle RequestState = iota
	StatePending
	StateSucceeded
	StateFailed
)

// String implements fmt.Stringer.
func (s RequestState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Action identifies an operator-triggered control request.
type Action string

const (
	ActionStartMonitoring Action = "start_monitoring"
	ActionStopMonitoring  Action = "stop_monitoring"
	ActionTestJamming     Action = "test_jamming"
)

// testDispatchedMessage is surfaced on dispatch of a detection test. It
// acknowledges that the test fired, never that it succeeded.
const testDispatchedMessage = "Jamming test dispatched"

const defaultPollInterval = 5 * time.Second

// StatusPoller owns the console's view of the anti-jamming status
// document. It refreshes the document on a fixed interval while started:
// a successful poll replaces the document wholesale, a failed poll is
// logged and the previous document is retained. The schedule is
// interval-based, so a slow response never delays the next tick.
type StatusPoller struct {
	client   *Client
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	running   bool
	status    StatusDocument
	pollState RequestState
	actions   map[Action]RequestState

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStatusPoller creates a poller around the given client. A
// non-positive interval defaults to 5 seconds.
func NewStatusPoller(client *Client, interval time.Duration, logger *zap.Logger) *StatusPoller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &StatusPoller{
		client:   client,
		interval: interval,
		logger:   logger,
		actions:  make(map[Action]RequestState),
	}
}

// Start begins the polling schedule. Idempotent: a running poller keeps
// its single schedule and never gains a duplicate one.
func (p *StatusPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.pollLoop()

	p.logger.Info("status poller started", zap.Duration("interval", p.interval))
}

// Stop cancels the polling schedule. Idempotent; after Stop returns, no
// further poll requests are issued until the next Start.
func (p *StatusPoller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
	p.logger.Info("status poller stopped")
}

func (p *StatusPoller) pollLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce()
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce()
		}
	}
}

// pollOnce refreshes the status document. Failures never surface past
// the poll cycle: they are logged and the stale document stays visible.
func (p *StatusPoller) pollOnce() {
	p.mu.Lock()
	p.pollState = StatePending
	ctx := p.ctx
	p.mu.Unlock()

	doc, err := p.client.JammingStatus(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.pollState = StateFailed
		p.logger.Warn("status poll failed; retaining previous document", zap.Error(err))
		return
	}
	p.pollState = StateSucceeded
	p.status = doc
}

// StartMonitoring requests backend monitoring activation. The local
// monitoring flag flips only on the Succeeded transition; a failed
// request leaves the view state untouched.
func (p *StatusPoller) StartMonitoring(ctx context.Context) error {
	p.setActionState(ActionStartMonitoring, StatePending)

	if _, err := p.client.StartMonitoring(ctx); err != nil {
		p.setActionState(ActionStartMonitoring, StateFailed)
		p.logger.Warn("start monitoring request failed", zap.Error(err))
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions[ActionStartMonitoring] = StateSucceeded
	p.status.Monitoring = true
	return nil
}

// StopMonitoring requests backend monitoring deactivation, clearing the
// local monitoring flag only on success.
func (p *StatusPoller) StopMonitoring(ctx context.Context) error {
	p.setActionState(ActionStopMonitoring, StatePending)

	if _, err := p.client.StopMonitoring(ctx); err != nil {
		p.setActionState(ActionStopMonitoring, StateFailed)
		p.logger.Warn("stop monitoring request failed", zap.Error(err))
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions[ActionStopMonitoring] = StateSucceeded
	p.status.Monitoring = false
	return nil
}

// TestJamming fires a one-shot detection test and returns the dispatch
// acknowledgment. The message is the same whether the request later
// succeeds or fails; the outcome is observable through ActionState only.
func (p *StatusPoller) TestJamming(ctx context.Context) string {
	p.setActionState(ActionTestJamming, StatePending)

	if _, err := p.client.TestJamming(ctx); err != nil {
		p.setActionState(ActionTestJamming, StateFailed)
		p.logger.Warn("jamming test request failed", zap.Error(err))
		return testDispatchedMessage
	}

	p.setActionState(ActionTestJamming, StateSucceeded)
	return testDispatchedMessage
}

// Status returns a copy of the current status document.
func (p *StatusPoller) Status() StatusDocument {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.status
	if p.status.SignalStrength != nil {
		doc.SignalStrength = make(map[string]float64, len(p.status.SignalStrength))
		for ch, v := range p.status.SignalStrength {
			doc.SignalStrength[ch] = v
		}
	}
	if p.status.NetworkHealth != nil {
		health := *p.status.NetworkHealth
		health.Targets = append([]TargetResult(nil), p.status.NetworkHealth.Targets...)
		doc.NetworkHealth = &health
	}
	return doc
}

// ThreatLevel classifies the current document for display.
func (p *StatusPoller) ThreatLevel() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ComputeThreatLevel(p.status)
}

// PollState reports the state of the most recent poll cycle.
func (p *StatusPoller) PollState() RequestState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pollState
}

// ActionState reports the state of the most recent request for an action.
func (p *StatusPoller) ActionState(action Action) RequestState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.actions[action]
}

func (p *StatusPoller) setActionState(action Action, state RequestState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions[action] = state
}
