package patcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/text/unicode/norm"

	"auxpatch/internal/auxmap"
	"auxpatch/internal/config"
)

// LoadTable reads the auxiliary-code table at path, applying the key
// normalization selected by patch.normalize_keys.
func LoadTable(cfg *config.Config, path string) (*auxmap.Map, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError("table file not found: %s", path)
		}
		return nil, fmt.Errorf("stat table: %w", err)
	}
	return auxmap.LoadFile(path, tableOptions(cfg)...)
}

func tableOptions(cfg *config.Config) []auxmap.Option {
	if cfg == nil {
		return nil
	}
	switch cfg.Patch.NormalizeKeys {
	case "nfc":
		return []auxmap.Option{auxmap.WithNormalization(norm.NFC)}
	case "nfkc":
		return []auxmap.Option{auxmap.WithNormalization(norm.NFKC)}
	default:
		return nil
	}
}
