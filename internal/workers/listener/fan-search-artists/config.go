package fansearchartists

import (
	"fmt"
	"time"

	"fanclub/internal/common/config"
	"fanclub/internal/search"
)

type Config struct {
	Timeout    time.Duration
	MaxResults int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:    5 * time.Second,
		MaxResults: search.DefaultLimit,
	}
}

func LoadConfig(wcfg config.WorkerConfig, scfg config.SearchConfig) *Config {
	cfg := DefaultConfig()
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	if scfg.MaxResults > 0 {
		cfg.MaxResults = scfg.MaxResults
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive")
	}
	return nil
}
