package patcher

import (
	"os"
	"path/filepath"
	"strings"
)

// Options selects the table, the dictionaries, and how results are written.
type Options struct {
	TablePath string
	File      string
	Dir       string
	// OutDir overrides paths.output_dir when set.
	OutDir  string
	InPlace bool
	// Backup copies each file aside before an in-place write.
	Backup bool
	DryRun bool
}

func (o Options) validate() error {
	if strings.TrimSpace(o.TablePath) == "" {
		return usageError("--table is required")
	}
	if o.File != "" && o.Dir != "" {
		return usageError("Specify either --file or --dir, not both.")
	}
	if o.File == "" && o.Dir == "" {
		return usageError("Either --file or --dir must be provided")
	}
	return nil
}

// writes reports whether the run touches the filesystem.
func (o Options) writes() bool {
	return !o.DryRun
}

// resolveOutputDir picks the flag value, then the configured directory,
// then ./auxified/moqi for a single file or ./auxified for a directory.
func (o Options) resolveOutputDir(configured string) (string, error) {
	if o.OutDir != "" {
		return o.OutDir, nil
	}
	if configured != "" {
		return configured, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if o.File != "" {
		return filepath.Join(cwd, "auxified", "moqi"), nil
	}
	return filepath.Join(cwd, "auxified"), nil
}
