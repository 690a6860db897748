package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"auxpatch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_STATE_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "state", "auxpatch")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.OutputDir != "" {
		t.Fatalf("expected empty output dir by default, got %q", cfg.Paths.OutputDir)
	}
	if strings.Join(cfg.Patch.Extensions, ",") != ".dict.yaml,.yaml,.txt" {
		t.Fatalf("unexpected extensions: %v", cfg.Patch.Extensions)
	}
	if cfg.Patch.NormalizeKeys != "" {
		t.Fatalf("expected byte-exact keys by default, got %q", cfg.Patch.NormalizeKeys)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if !cfg.Output.Color {
		t.Fatal("expected colour enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.StateDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected state dir to exist: %v", err)
	}
	if filepath.Dir(cfg.JournalPath()) != cfg.Paths.StateDir || filepath.Dir(cfg.LockPath()) != cfg.Paths.StateDir {
		t.Fatal("journal and lock must live in the state dir")
	}
}

func TestLoadHonoursXDGStateHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.StateDir != filepath.Join(stateHome, "auxpatch") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "auxpatch.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
			StateDir  string `toml:"state_dir"`
		} `toml:"paths"`
		Patch struct {
			Extensions    []string `toml:"extensions"`
			NormalizeKeys string   `toml:"normalize_keys"`
		} `toml:"patch"`
		Journal struct {
			Enabled bool `toml:"enabled"`
		} `toml:"journal"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Patch.Extensions = []string{"TSV", ".txt", " .tsv "}
	custom.Patch.NormalizeKeys = "NFC"
	custom.Journal.Enabled = false
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.OutputDir != custom.Paths.OutputDir {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if strings.Join(cfg.Patch.Extensions, ",") != ".tsv,.txt" {
		t.Fatalf("expected normalized, de-duplicated extensions, got %v", cfg.Patch.Extensions)
	}
	if cfg.Patch.NormalizeKeys != "nfc" {
		t.Fatalf("expected lower-cased normalization form, got %q", cfg.Patch.NormalizeKeys)
	}
	if cfg.Journal.Enabled {
		t.Fatal("expected journal disabled from file")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"normalize": "[patch]\nnormalize_keys = \"nfd-ish\"\n",
		"format":    "[logging]\nformat = \"xml\"\n",
		"level":     "[logging]\nlevel = \"loud\"\n",
		"unknown":   "[paths]\nstaging_dir = \"/tmp\"\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "auxpatch.toml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, _, _, err := config.Load(path); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists to be false")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected defaults")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/dicts")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "dicts") {
		t.Fatalf("unexpected expansion %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config must load cleanly: %v", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, want := range []string{"[paths]", "[patch]", "[journal]", "[logging]"} {
		if !strings.Contains(string(contents), want) {
			t.Fatalf("sample missing section %s", want)
		}
	}
}
