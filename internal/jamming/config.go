package jamming

import "time"

type Config struct {
	SampleInterval      time.Duration `mapstructure:"sample_interval"`
	ProbeInterval       time.Duration `mapstructure:"probe_interval"`
	ProbeTargets        []string      `mapstructure:"probe_targets"`
	ProbeCount          int           `mapstructure:"probe_count"`
	ProbeTimeout        time.Duration `mapstructure:"probe_timeout"`
	PacketLossThreshold float64       `mapstructure:"packet_loss_threshold"`
	SignalDropThreshold float64       `mapstructure:"signal_drop_threshold"`
	DetectionCooldown   time.Duration `mapstructure:"detection_cooldown"`
	HistorySize         int           `mapstructure:"history_size"`
}

func DefaultConfig() Config {
	return Config{
		SampleInterval:      2 * time.Second,
		ProbeInterval:       5 * time.Second,
		ProbeTargets:        []string{"8.8.8.8", "1.1.1.1", "208.67.222.222"},
		ProbeCount:          1,
		ProbeTimeout:        3 * time.Second,
		PacketLossThreshold: 15.0,
		SignalDropThreshold: 30.0,
		DetectionCooldown:   30 * time.Second,
		HistorySize:         100,
	}
}
