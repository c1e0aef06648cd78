package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. The OMDb API key is only
// required by the lookup command and is checked there.
func (c *Config) Validate() error {
	if err := c.validateWeighting(); err != nil {
		return err
	}
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWeighting() error {
	switch c.Weighting.LateReleasePolicy {
	case LateReleaseNeutral, LateReleasePenalty:
	default:
		return fmt.Errorf("weighting.late_release_policy must be %q or %q, got %q", LateReleaseNeutral, LateReleasePenalty, c.Weighting.LateReleasePolicy)
	}
	if c.Weighting.ResonanceCap < 1 || c.Weighting.ResonanceCap > 10 {
		return errors.New("weighting.resonance_cap must be between 1.0 and 10.0")
	}
	if c.Weighting.PeerTolerance <= 0 {
		return errors.New("weighting.peer_tolerance must be positive")
	}
	if c.Weighting.IngestWorkers <= 0 {
		return errors.New("weighting.ingest_workers must be positive")
	}
	return nil
}

func (c *Config) validateOMDb() error {
	if c.OMDb.TimeoutSeconds <= 0 {
		return errors.New("omdb.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// RequireOMDbKey reports a helpful error when the lookup client cannot run.
func (c *Config) RequireOMDbKey() error {
	if c.OMDb.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("omdb.api_key is required. Set OMDB_API_KEY env var or edit %s (create with 'shodan config init')", defaultPath)
}
