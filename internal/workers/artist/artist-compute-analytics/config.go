package artistcomputeanalytics

import (
	"fmt"
	"time"

	"fanclub/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// ForceRefresh bypasses the analytics cache for every job.
	ForceRefresh bool
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	cfg := DefaultConfig()
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
