package patcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"auxpatch/internal/fileutil"
	"auxpatch/internal/journal"
	"auxpatch/internal/logging"
)

// ErrJournalDisabled is returned by Restore when journal.enabled is false.
var ErrJournalDisabled = errors.New("run journal is disabled; set journal.enabled = true to restore backups")

// Restore replaces target with the newest backup the journal recorded for
// it. The restored file takes the backup's permissions and modification time.
func (p *Patcher) Restore(ctx context.Context, target string) (*journal.Entry, error) {
	if !p.cfg.Journal.Enabled {
		return nil, ErrJournalDisabled
	}
	abs := absPath(target)

	store, err := journal.Open(p.cfg)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	entry, err := store.LatestBackup(ctx, abs)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			return nil, notFoundError("no backup recorded for %s", abs)
		}
		return nil, err
	}

	if _, err := os.Stat(entry.BackupPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError("backup file not found: %s", entry.BackupPath)
		}
		return nil, fmt.Errorf("stat backup: %w", err)
	}

	release, err := p.acquireRunLock()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := fileutil.CopyAtomic(entry.BackupPath, abs); err != nil {
		return nil, fmt.Errorf("restore %s: %w", abs, err)
	}

	fmt.Fprintf(p.out, "Restored %s from %s\n", abs, entry.BackupPath)
	p.logger.Info("backup restored",
		logging.String(logging.FieldFile, abs),
		logging.String("backup", entry.BackupPath),
		logging.String("backup_run_id", entry.RunID),
	)
	return entry, nil
}
