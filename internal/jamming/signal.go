package jamming

import (
	"bufio"
	"context"
	"net"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// SignalSource reads per-channel signal strength. Values are positive
// signal-level numbers (abs dBm); a missing channel means no reading
// was available.
type SignalSource interface {
	Sample(ctx context.Context) map[string]float64
}

// PlatformSignalSource reads WiFi signal strength from the wireless tools
// when present and degrades to a connectivity-based estimate otherwise.
// Cellular strength is a fixed moderate estimate; there is no modem API.
type PlatformSignalSource struct {
	dialTimeout time.Duration
	probeAddr   string
}

// NewPlatformSignalSource creates the default signal source.
func NewPlatformSignalSource() *PlatformSignalSource {
	return &PlatformSignalSource{
		dialTimeout: 3 * time.Second,
		probeAddr:   "8.8.8.8:53",
	}
}

func (s *PlatformSignalSource) Sample(ctx context.Context) map[string]float64 {
	out := map[string]float64{
		ChannelCellular: 60,
	}
	if level, ok := wifiSignalLevel(ctx); ok {
		out[ChannelWiFi] = level
	} else {
		out[ChannelWiFi] = s.connectivityEstimate(ctx)
	}
	return out
}

// connectivityEstimate falls back to a TCP reachability test: a quick
// connection means a usable link (45), failure means a degraded one (80).
func (s *PlatformSignalSource) connectivityEstimate(ctx context.Context) float64 {
	d := net.Dialer{Timeout: s.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", s.probeAddr)
	if err != nil {
		return 80
	}
	conn.Close()
	return 45
}

// wifiSignalLevel parses "Signal level=-NN" from iwconfig output.
func wifiSignalLevel(ctx context.Context) (float64, bool) {
	out, err := exec.CommandContext(ctx, "iwconfig").Output()
	if err != nil {
		return 0, false
	}

	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		line := sc.Text()
		idx := strings.Index(line, "Signal level=")
		if idx < 0 {
			continue
		}
		field := line[idx+len("Signal level="):]
		if sp := strings.IndexAny(field, " \t"); sp >= 0 {
			field = field[:sp]
		}
		field = strings.TrimSuffix(field, "dBm")
		level, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		if level < 0 {
			level = -level
		}
		return level, true
	}
	return 0, false
}
