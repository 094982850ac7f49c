package blogposts

import (
	"fmt"
	"time"
)

type Config struct {
	DefaultLimit int
	MaxLimit     int
	Timeout      time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		DefaultLimit: 20,
		MaxLimit:     100,
		Timeout:      10 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive")
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be at least default_limit")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
