package newslettersubscribe

import (
	"fmt"
	"time"
)

const (
	DefaultSource = "website"

	ChannelEmail = "email"
	ChannelTopic = "topic"
	ChannelCRM   = "crm"
)

type Config struct {
	Timeout             time.Duration
	NotificationTimeout time.Duration
	ConfirmationSubject string
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:             10 * time.Second,
		NotificationTimeout: 10 * time.Second,
		ConfirmationSubject: "Welcome to the Remedypedia newsletter",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.NotificationTimeout <= 0 {
		return fmt.Errorf("notification_timeout must be positive")
	}
	if c.ConfirmationSubject == "" {
		return fmt.Errorf("confirmation_subject is required")
	}
	return nil
}
