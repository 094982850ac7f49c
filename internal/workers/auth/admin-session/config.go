package adminsession

import (
	"fmt"
	"time"

	"remedypedia/internal/common/config"
)

const keyPrefix = "session:"

type Config struct {
	TTL     time.Duration
	Timeout time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		TTL:     8 * time.Hour,
		Timeout: 10 * time.Second,
	}
	if appCfg != nil && appCfg.Auth.Session.TTL > 0 {
		cfg.TTL = time.Duration(appCfg.Auth.Session.TTL) * time.Second
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
