package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"auxpatch/internal/config"
	"auxpatch/internal/diffview"
	"auxpatch/internal/logging"
	"auxpatch/internal/patcher"
)

type commandContext struct {
	configFlag  *string
	noColorFlag *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, noColorFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		noColorFlag: noColorFlag,
	}
}

// ensureConfig loads configuration once. Directories are created lazily by
// the operations that write, so dry runs leave the state directory alone.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// loggerFor builds the diagnostic logger on first use, writing to the
// command's stderr.
func (c *commandContext) loggerFor(cmd *cobra.Command) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) colorEnabled(w io.Writer) bool {
	if c.noColorFlag != nil && *c.noColorFlag {
		return false
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return false
	}
	return diffview.ShouldColor(w, cfg.Output.Color)
}

// newPatcher returns a patcher writing its report to the command's stdout,
// along with the configuration it was built from.
func (c *commandContext) newPatcher(cmd *cobra.Command) (*patcher.Patcher, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	out := cmd.OutOrStdout()
	return patcher.New(cfg, c.loggerFor(cmd), out, patcher.WithColor(c.colorEnabled(out))), cfg, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
