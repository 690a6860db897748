package patcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"auxpatch/internal/auxmap"
	"auxpatch/internal/config"
	"auxpatch/internal/dictmerge"
	"auxpatch/internal/diffview"
	"auxpatch/internal/fileutil"
	"auxpatch/internal/logging"
	"auxpatch/internal/preflight"
)

const backupStampLayout = "20060102T150405Z"

// Patcher runs patch operations and writes report lines to its output.
type Patcher struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	color  bool
	now    func() time.Time
}

// Option customizes a Patcher.
type Option func(*Patcher)

// WithColor enables coloured diffs in dry runs.
func WithColor(enabled bool) Option {
	return func(p *Patcher) {
		p.color = enabled
	}
}

// WithClock replaces the clock used for backup names.
func WithClock(now func() time.Time) Option {
	return func(p *Patcher) {
		if now != nil {
			p.now = now
		}
	}
}

// New constructs a Patcher. Report lines go to out; diagnostics go to logger.
func New(cfg *config.Config, logger *slog.Logger, out io.Writer, opts ...Option) *Patcher {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	if out == nil {
		out = io.Discard
	}
	p := &Patcher{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "patcher"),
		out:    out,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one patch run. Usage mistakes wrap ErrUsage and missing
// inputs wrap ErrNotFound. Unreadable dictionaries are reported and skipped;
// a failed write aborts the run.
func (p *Patcher) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	table, err := LoadTable(p.cfg, opts.TablePath)
	if err != nil {
		return nil, err
	}

	targets, err := collectTargets(opts, p.cfg.Patch.Extensions)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: uuid.NewString(), DryRun: opts.DryRun}
	ctx = logging.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, p.logger)
	stats := table.Stats()
	logger.Info("table loaded",
		logging.String("table", opts.TablePath),
		logging.Int("kept", stats.Kept),
		logging.Int("duplicates", stats.Duplicates),
		logging.Int("malformed", stats.Malformed),
	)

	if len(targets) == 0 {
		fmt.Fprintln(p.out, "No files found to process.")
		return summary, nil
	}

	var outDir string
	if !opts.InPlace {
		if outDir, err = opts.resolveOutputDir(p.cfg.Paths.OutputDir); err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}
	}
	if opts.Backup && !opts.InPlace {
		logging.WarnWithContext(logger, "--backup has no effect without --inplace", "backup_ignored",
			logging.String(logging.FieldErrorHint, "add --inplace to back up and overwrite the originals"),
			logging.String(logging.FieldImpact, "no backups are written"),
		)
	}

	var rec *recorder
	if opts.writes() {
		release, err := p.prepareWrite(opts, outDir, targets)
		if err != nil {
			return nil, err
		}
		defer release()
		rec = p.openRecorder(logger, summary.RunID, opts.TablePath)
		defer rec.close()
	}

	printer := diffview.NewPrinter(p.out, p.color)
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result, err := p.processFile(ctx, target, table, opts, outDir, printer)
		summary.Files = append(summary.Files, result)
		summary.TotalChanged += result.Changed
		if err != nil {
			return summary, err
		}
		if result.Status == StatusWritten {
			rec.record(ctx, result, opts.InPlace)
		}
	}

	fmt.Fprintf(p.out, "Done. Total files processed: %d, total lines modified: %d\n", len(targets), summary.TotalChanged)
	logger.Info("run finished",
		logging.Int("files", len(targets)),
		logging.Int("changed", summary.TotalChanged),
		logging.Bool("dry_run", opts.DryRun),
	)
	return summary, nil
}

// prepareWrite takes the run lock, creates the output directory, and runs
// preflight checks. The returned func releases the lock.
func (p *Patcher) prepareWrite(opts Options, outDir string, targets []string) (func(), error) {
	release, err := p.acquireRunLock()
	if err != nil {
		return nil, err
	}
	if !opts.InPlace {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			release()
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	results := preflight.RunAll(preflight.Request{
		InPlace:   opts.InPlace,
		Targets:   targets,
		OutputDir: outDir,
		StateDir:  p.cfg.Paths.StateDir,
	})
	for _, r := range results {
		p.logger.Debug("preflight check",
			logging.String("check", r.Name),
			logging.Bool("passed", r.Passed),
			logging.String("detail", r.Detail),
		)
	}
	if failed, ok := preflight.FirstFailure(results); ok {
		release()
		return nil, fmt.Errorf("preflight %s check failed: %s", strings.ToLower(failed.Name), failed.Detail)
	}
	return release, nil
}

// processFile handles one dictionary. The returned error is non-nil only
// when a write fails.
func (p *Patcher) processFile(ctx context.Context, path string, table *auxmap.Map, opts Options, outDir string, printer *diffview.Printer) (FileResult, error) {
	logger := logging.WithContext(ctx, p.logger).With(logging.String(logging.FieldFile, path))
	result := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err == nil && !utf8.Valid(data) {
		err = errors.New("invalid UTF-8")
	}
	if err != nil {
		fmt.Fprintf(p.out, "Skipping %s: could not read (%v)\n", path, err)
		logging.WarnWithContext(logger, "dictionary skipped", "dictionary_unreadable",
			logging.Error(err),
			logging.String(logging.FieldImpact, "file left unpatched"),
		)
		result.Status = StatusSkipped
		result.Err = err
		return result, nil
	}

	original := dictmerge.SplitLines(string(data))
	merged := dictmerge.Merge(original, table)
	result.Changed = merged.Changed
	result.Entries = merged.Entries
	result.AlreadyCoded = merged.AlreadyCoded
	result.Unmapped = merged.Unmapped
	logger.Debug("dictionary merged",
		logging.Int("entries", merged.Entries),
		logging.Int("changed", merged.Changed),
		logging.Int("already_coded", merged.AlreadyCoded),
		logging.Int("unmapped", merged.Unmapped),
	)

	if merged.Changed == 0 {
		fmt.Fprintf(p.out, "%s: no changes\n", path)
		result.Status = StatusUnchanged
		return result, nil
	}

	if opts.DryRun {
		diff, err := diffview.Unified(original, merged.Lines, path, path+" (with-aux)")
		if err != nil {
			return result, fmt.Errorf("diff %s: %w", path, err)
		}
		if err := printer.Print(diff); err != nil {
			return result, fmt.Errorf("print diff: %w", err)
		}
		fmt.Fprintf(p.out, "\nPlanned changes for %s: %d lines modified.\n", path, merged.Changed)
		result.Status = StatusPlanned
		return result, nil
	}

	content := []byte(dictmerge.Join(merged.Lines))
	if opts.InPlace {
		if opts.Backup {
			backup := fmt.Sprintf("%s.%s.bak", path, p.now().UTC().Format(backupStampLayout))
			if err := fileutil.CopyAtomic(path, backup); err != nil {
				return result, fmt.Errorf("backup %s: %w", path, err)
			}
			fmt.Fprintf(p.out, "Backup written to: %s\n", backup)
			result.BackupPath = backup
		}
		if err := fileutil.WriteFileAtomic(path, content, 0o644); err != nil {
			return result, fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(p.out, "Wrote %d modifications into %s\n", merged.Changed, path)
		result.Destination = path
	} else {
		dest := filepath.Join(outDir, filepath.Base(path))
		if err := fileutil.WriteFileAtomic(dest, content, 0o644); err != nil {
			return result, fmt.Errorf("write %s: %w", dest, err)
		}
		fmt.Fprintf(p.out, "Wrote %d modifications to %s\n", merged.Changed, dest)
		result.Destination = dest
	}
	result.Status = StatusWritten
	logger.Info("dictionary written",
		logging.String("destination", result.Destination),
		logging.Int("changed", merged.Changed),
	)
	return result, nil
}
