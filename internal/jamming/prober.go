package jamming

import (
	"context"
	"runtime"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"go.uber.org/zap"
)

// Prober tests reachability of a single reference target.
type Prober interface {
	Probe(ctx context.Context, target string) (reachable bool, rtt time.Duration)
}

// ICMPProber pings reference targets using ICMP echo.
type ICMPProber struct {
	count   int
	timeout time.Duration
	logger  *zap.Logger
}

// NewICMPProber creates a prober with the given per-target count and timeout.
func NewICMPProber(cfg Config, logger *zap.Logger) *ICMPProber {
	return &ICMPProber{
		count:   cfg.ProbeCount,
		timeout: cfg.ProbeTimeout,
		logger:  logger,
	}
}

// Probe pings one target and reports whether any reply arrived.
func (p *ICMPProber) Probe(ctx context.Context, target string) (bool, time.Duration) {
	pinger, err := probing.NewPinger(target)
	if err != nil {
		p.logger.Debug("failed to create pinger", zap.String("target", target), zap.Error(err))
		return false, 0
	}

	pinger.Count = p.count
	pinger.Timeout = p.timeout
	pinger.SetPrivileged(runtime.GOOS == "windows")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if runErr := pinger.Run(); runErr != nil {
			p.logger.Debug("probe failed", zap.String("target", target), zap.Error(runErr))
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		pinger.Stop()
		return false, 0
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv > 0 {
		return true, stats.AvgRtt
	}
	return false, 0
}
