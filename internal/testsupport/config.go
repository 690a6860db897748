// Package testsupport provides fixtures shared by package tests: isolated
// configs, dictionary and table files, and an opened run journal.
package testsupport

import (
	"path/filepath"
	"testing"

	"auxpatch/internal/config"
)

// ConfigOption adjusts a test configuration.
type ConfigOption func(*config.Config)

// NewConfig returns defaults rooted in a fresh temp directory: state under
// <tmp>/state and patched copies under <tmp>/out. Neither directory is
// created. Colour is off.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Output.Color = false
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithJournal toggles the run journal.
func WithJournal(enabled bool) ConfigOption {
	return func(cfg *config.Config) { cfg.Journal.Enabled = enabled }
}

// WithNormalizeKeys sets patch.normalize_keys.
func WithNormalizeKeys(form string) ConfigOption {
	return func(cfg *config.Config) { cfg.Patch.NormalizeKeys = form }
}

// WithoutOutputDir clears paths.output_dir so the mode-dependent default
// under the working directory applies.
func WithoutOutputDir() ConfigOption {
	return func(cfg *config.Config) { cfg.Paths.OutputDir = "" }
}

// BaseDir returns the temp directory a NewConfig config is rooted in.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
