package plugintest

import (
	"time"

	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// StubConfig is an empty plugin.Config for tests. Unmarshal leaves the
// target untouched so modules fall back to their defaults.
type StubConfig struct {
	Values map[string]any
}

var _ plugin.Config = StubConfig{}

func (c StubConfig) Unmarshal(_ any) error { return nil }

func (c StubConfig) Get(key string) any { return c.Values[key] }

func (c StubConfig) GetString(key string) string {
	if v, ok := c.Values[key].(string); ok {
		return v
	}
	return ""
}

func (c StubConfig) GetInt(key string) int {
	if v, ok := c.Values[key].(int); ok {
		return v
	}
	return 0
}

func (c StubConfig) GetFloat64(key string) float64 {
	if v, ok := c.Values[key].(float64); ok {
		return v
	}
	return 0
}

func (c StubConfig) GetBool(key string) bool {
	if v, ok := c.Values[key].(bool); ok {
		return v
	}
	return false
}

func (c StubConfig) GetDuration(key string) time.Duration {
	if v, ok := c.Values[key].(time.Duration); ok {
		return v
	}
	return 0
}

func (c StubConfig) GetStringSlice(key string) []string {
	if v, ok := c.Values[key].([]string); ok {
		return v
	}
	return nil
}

func (c StubConfig) IsSet(key string) bool {
	_, ok := c.Values[key]
	return ok
}

func (c StubConfig) Sub(_ string) plugin.Config { return StubConfig{} }
