package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateMetrics(); err != nil {
		return err
	}
	if err := c.validatePronunciation(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if c.Metrics.SNRWindowSeconds <= 0 {
		return errors.New("metrics.snr_window_seconds must be positive")
	}
	return nil
}

func (c *Config) validatePronunciation() error {
	if !c.Pronunciation.Enabled {
		return nil
	}
	if c.Pronunciation.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/voicerec/config.toml"
		}
		return fmt.Errorf("pronunciation.api_key is required when pronunciation.enabled is true; edit %s (create with 'voicerec config init')", defaultPath)
	}
	if c.Pronunciation.Region == "" {
		return errors.New("pronunciation.region is required when pronunciation.enabled is true")
	}
	if c.Pronunciation.TimeoutSeconds <= 0 {
		return errors.New("pronunciation.timeout_seconds must be positive")
	}
	return nil
}
