package journal

import (
	"errors"
	"time"
)

// Mode identifies where a run wrote its result.
type Mode string

const (
	// ModeInPlace marks a target overwritten in place.
	ModeInPlace Mode = "inplace"
	// ModeOutputDir marks a patched copy written to the output directory.
	ModeOutputDir Mode = "outdir"
)

// ErrNotFound is returned when no journal row matches a query.
var ErrNotFound = errors.New("journal entry not found")

// Entry is one written file.
type Entry struct {
	ID           int64
	RunID        string
	CreatedAt    time.Time
	TargetPath   string
	Mode         Mode
	LinesChanged int
	TablePath    string
	BackupPath   string
	OutputPath   string
}

// Destination returns the file that received the patched content.
func (e Entry) Destination() string {
	if e.Mode == ModeOutputDir && e.OutputPath != "" {
		return e.OutputPath
	}
	return e.TargetPath
}
