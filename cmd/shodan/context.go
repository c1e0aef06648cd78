package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shodan/internal/ark"
	"shodan/internal/canon"
	"shodan/internal/config"
	"shodan/internal/logging"
	"shodan/internal/omdb"
	"shodan/internal/weighting"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	engineOnce sync.Once
	engine     *weighting.Engine
	engineErr  error

	newFetcher func(*config.Config) (omdb.Fetcher, error)
}

// contextOption customizes a commandContext, mainly for tests.
type contextOption func(*commandContext)

// withFetcher makes lookup use fetcher instead of an OMDb client built from
// the config.
func withFetcher(fetcher omdb.Fetcher) contextOption {
	return func(c *commandContext) {
		c.newFetcher = func(*config.Config) (omdb.Fetcher, error) {
			return fetcher, nil
		}
	}
}

func newCommandContext(configFlag *string, opts ...contextOption) *commandContext {
	c := &commandContext{
		configFlag: configFlag,
		newFetcher: func(cfg *config.Config) (omdb.Fetcher, error) {
			return omdb.NewFromConfig(cfg)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// ensureEngine loads the canon document named by the config and builds the
// scoring engine with the configured policy.
func (c *commandContext) ensureEngine() (*weighting.Engine, error) {
	c.engineOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.engineErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.engineErr = err
			return
		}
		registry, _, err := canon.Load(cfg.Paths.CanonPath, logger)
		if err != nil {
			c.engineErr = fmt.Errorf("load canon: %w", err)
			return
		}
		c.engine = weighting.NewEngine(registry, weighting.PolicyFromConfig(cfg))
	})
	return c.engine, c.engineErr
}

func (c *commandContext) withStore(fn func(*ark.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := ark.Open(cfg)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// withLockedStore holds the archive writer lock for the duration of fn.
func (c *commandContext) withLockedStore(fn func(*ark.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	unlock, err := ark.Lock(cfg.ArkLockPath())
	if err != nil {
		return fmt.Errorf("%w; another shodan command is modifying the archive", err)
	}
	defer unlock()
	return c.withStore(fn)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
