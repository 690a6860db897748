package patcher

import (
	"context"
	"log/slog"
	"path/filepath"

	"auxpatch/internal/journal"
	"auxpatch/internal/logging"
)

// recorder appends written files to the journal. A nil recorder records
// nothing, and failures only produce warnings.
type recorder struct {
	store     *journal.Store
	logger    *slog.Logger
	runID     string
	tablePath string
}

func (p *Patcher) openRecorder(logger *slog.Logger, runID, tablePath string) *recorder {
	if !p.cfg.Journal.Enabled {
		return nil
	}
	store, err := journal.Open(p.cfg)
	if err != nil {
		logging.WarnWithContext(logger, "run journal unavailable", "journal_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.state_dir or set journal.enabled = false"),
			logging.String(logging.FieldImpact, "writes from this run will not be restorable with auxpatch restore"),
		)
		return nil
	}
	return &recorder{store: store, logger: logger, runID: runID, tablePath: absPath(tablePath)}
}

func (r *recorder) record(ctx context.Context, result FileResult, inPlace bool) {
	if r == nil {
		return
	}
	entry := journal.Entry{
		RunID:        r.runID,
		TargetPath:   absPath(result.Path),
		Mode:         journal.ModeOutputDir,
		LinesChanged: result.Changed,
		TablePath:    r.tablePath,
		BackupPath:   absPath(result.BackupPath),
	}
	if inPlace {
		entry.Mode = journal.ModeInPlace
	} else {
		entry.OutputPath = absPath(result.Destination)
	}
	if _, err := r.store.Record(ctx, entry); err != nil {
		logging.WarnWithContext(r.logger, "failed to record journal entry", "journal_record_failed",
			logging.String(logging.FieldFile, result.Path),
			logging.Error(err),
		)
	}
}

func (r *recorder) close() {
	if r == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		r.logger.Warn("failed to close run journal", logging.Error(err))
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
