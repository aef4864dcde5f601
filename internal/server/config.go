package server

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address as host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.dev_mode", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Module defaults
	v.SetDefault("modules.security.enabled", true)
	v.SetDefault("modules.security.sample_interval", "2s")
	v.SetDefault("modules.security.probe_interval", "5s")
	v.SetDefault("modules.security.probe_targets", []string{"8.8.8.8", "1.1.1.1", "208.67.222.222"})
	v.SetDefault("modules.security.probe_count", 1)
	v.SetDefault("modules.security.probe_timeout", "3s")
	v.SetDefault("modules.security.packet_loss_threshold", 15.0)
	v.SetDefault("modules.security.signal_drop_threshold", 30.0)
	v.SetDefault("modules.security.detection_cooldown", "30s")
	v.SetDefault("modules.security.history_size", 100)
	v.SetDefault("modules.drones.enabled", true)
	v.SetDefault("modules.drones.battery_interval", "10s")
	v.SetDefault("modules.drones.position_interval", "5s")
	v.SetDefault("modules.drones.rth_threshold", 20.0)
	v.SetDefault("modules.drones.emergency_threshold", 10.0)
	v.SetDefault("modules.drones.return_speed_mps", 15.0)
	v.SetDefault("modules.drones.home_lat", 28.7041)
	v.SetDefault("modules.drones.home_lon", 77.1025)
	v.SetDefault("modules.drones.seed_fleet", true)
	v.SetDefault("modules.alerts.max_alerts", 500)
	v.SetDefault("modules.cache.detection_ttl", "5m")
	v.SetDefault("modules.cache.frame_ttl", "1m")
	v.SetDefault("modules.cache.max_entries", 1000)
	v.SetDefault("modules.mobile.dashboard_ttl", "5s")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("guardx")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/guardx")
	}

	// Environment variable support: GUARDX_SERVER_PORT=9090
	v.SetEnvPrefix("GUARDX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is fine -- use defaults
	}

	return v, nil
}
