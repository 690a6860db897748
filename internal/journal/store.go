package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"auxpatch/internal/config"
)

const defaultRecentLimit = 20

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("journal requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.JournalPath())
}

// OpenPath opens the journal database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends entry and returns it with its assigned id and timestamp.
func (s *Store) Record(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.RunID == "" {
		return nil, errors.New("record journal entry: run id is required")
	}
	if entry.TargetPath == "" {
		return nil, errors.New("record journal entry: target path is required")
	}
	switch entry.Mode {
	case ModeInPlace, ModeOutputDir:
	default:
		return nil, fmt.Errorf("record journal entry: unknown mode %q", entry.Mode)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO journal_entries (
            run_id, created_at, target_path, mode, lines_changed,
            table_path, backup_path, output_path
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.CreatedAt.Format(time.RFC3339Nano),
		entry.TargetPath,
		string(entry.Mode),
		entry.LinesChanged,
		nullableString(entry.TablePath),
		nullableString(entry.BackupPath),
		nullableString(entry.OutputPath),
	)
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	entry.ID = id
	return &entry, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx, selectEntries+` ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// LatestBackup returns the newest entry for target that recorded a backup.
func (s *Store) LatestBackup(ctx context.Context, target string) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		selectEntries+` WHERE target_path = ? AND backup_path IS NOT NULL ORDER BY id DESC LIMIT 1`,
		target,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no backup recorded for %s", ErrNotFound, target)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

const selectEntries = `SELECT id, run_id, created_at, target_path, mode, lines_changed,
    table_path, backup_path, output_path FROM journal_entries`

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry      Entry
		createdRaw string
		mode       string
		tablePath  sql.NullString
		backupPath sql.NullString
		outputPath sql.NullString
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.RunID,
		&createdRaw,
		&entry.TargetPath,
		&mode,
		&entry.LinesChanged,
		&tablePath,
		&backupPath,
		&outputPath,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan journal entry: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		entry.CreatedAt = ts
	}
	entry.Mode = Mode(mode)
	entry.TablePath = tablePath.String
	entry.BackupPath = backupPath.String
	entry.OutputPath = outputPath.String
	return &entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
