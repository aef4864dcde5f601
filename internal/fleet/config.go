package fleet

import "time"

type Config struct {
	BatteryInterval    time.Duration `mapstructure:"battery_interval"`
	PositionInterval   time.Duration `mapstructure:"position_interval"`
	RTHThreshold       float64       `mapstructure:"rth_threshold"`
	EmergencyThreshold float64       `mapstructure:"emergency_threshold"`
	ReturnSpeedMPS     float64       `mapstructure:"return_speed_mps"`
	HomeLat            float64       `mapstructure:"home_lat"`
	HomeLon            float64       `mapstructure:"home_lon"`
	SeedFleet          bool          `mapstructure:"seed_fleet"`
}

func DefaultConfig() Config {
	return Config{
		BatteryInterval:    10 * time.Second,
		PositionInterval:   5 * time.Second,
		RTHThreshold:       20.0,
		EmergencyThreshold: 10.0,
		ReturnSpeedMPS:     15.0,
		HomeLat:            28.7041,
		HomeLon:            77.1025,
		SeedFleet:          true,
	}
}
