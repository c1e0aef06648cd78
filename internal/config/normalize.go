package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOMDb()
	c.normalizeWeighting()
	c.normalizeArk()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	// An explicitly empty canon path means heuristic-only scoring.
	if c.Paths.CanonPath, err = expandPath(strings.TrimSpace(c.Paths.CanonPath)); err != nil {
		return fmt.Errorf("paths.canon_path: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOMDb() {
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	if c.OMDb.APIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.OMDb.APIKey = strings.TrimSpace(value)
		}
	}
	c.OMDb.BaseURL = strings.TrimRight(strings.TrimSpace(c.OMDb.BaseURL), "/")
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
	if c.OMDb.TimeoutSeconds == 0 {
		c.OMDb.TimeoutSeconds = defaultOMDbTimeout
	}
}

func (c *Config) normalizeWeighting() {
	c.Weighting.LateReleasePolicy = strings.ToLower(strings.TrimSpace(c.Weighting.LateReleasePolicy))
	if c.Weighting.LateReleasePolicy == "" {
		c.Weighting.LateReleasePolicy = LateReleaseNeutral
	}
	if c.Weighting.ResonanceCap == 0 {
		c.Weighting.ResonanceCap = defaultResonanceCap
	}
	if c.Weighting.PeerTolerance == 0 {
		c.Weighting.PeerTolerance = defaultPeerTolerance
	}
	if c.Weighting.IngestWorkers == 0 {
		c.Weighting.IngestWorkers = defaultIngestWorkers
	}
}

func (c *Config) normalizeArk() {
	c.Ark.Operator = strings.TrimSpace(c.Ark.Operator)
	c.Ark.Version = strings.TrimSpace(c.Ark.Version)
	c.Ark.Protocol = strings.TrimSpace(c.Ark.Protocol)
	c.Ark.ExportPath = strings.TrimSpace(c.Ark.ExportPath)
	if c.Ark.ExportPath == "" {
		c.Ark.ExportPath = filepath.Join(c.Paths.DataDir, defaultArkExportFileName)
		return
	}
	if expanded, err := expandPath(c.Ark.ExportPath); err == nil {
		c.Ark.ExportPath = expanded
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
