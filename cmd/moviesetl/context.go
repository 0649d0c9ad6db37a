package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"MoviesETL/internal/app"
	"MoviesETL/internal/config"
	"MoviesETL/internal/logging"
)

type globalFlags struct {
	config   string
	pages    int
	pagesSet bool
	logLevel string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags.pagesSet {
			if c.flags.pages <= 0 {
				c.configErr = fmt.Errorf("--pages must be positive, got %d", c.flags.pages)
				return
			}
			cfg.API.Pages = c.flags.pages
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = level
		}
		c.config = cfg
		c.logger = logging.New(cfg.Logging.Level)
	})
	return c.config, c.configErr
}

func (c *commandContext) withApp(fn func(*app.Application) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	application := app.New(cfg, c.logger)
	defer func() {
		if closeErr := application.Close(); closeErr != nil {
			c.logger.Warn("close database", "error", closeErr)
		}
	}()

	return fn(application)
}
