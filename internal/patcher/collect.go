package patcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// collectTargets resolves the dictionaries a run processes.
func collectTargets(opts Options, extensions []string) ([]string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, notFoundError("chars file not found: %s", opts.File)
			}
			return nil, fmt.Errorf("stat %s: %w", opts.File, err)
		}
		return []string{opts.File}, nil
	}

	info, err := os.Stat(opts.Dir)
	if err != nil || !info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError("directory not found: %s", opts.Dir)
		}
		return nil, fmt.Errorf("stat %s: %w", opts.Dir, err)
	}
	return listDictionaries(opts.Dir, extensions)
}

// listDictionaries returns the regular files directly inside dir whose names
// match one of extensions, sorted by name. Symlinks to regular files count.
func listDictionaries(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !matchesExtension(name, extensions) {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// matchesExtension is case-sensitive. A name that is only the extension,
// such as ".txt", does not match.
func matchesExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}
