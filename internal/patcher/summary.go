package patcher

// FileStatus describes what a run did with one dictionary.
type FileStatus string

const (
	StatusSkipped   FileStatus = "skipped"
	StatusUnchanged FileStatus = "unchanged"
	StatusPlanned   FileStatus = "planned"
	StatusWritten   FileStatus = "written"
)

// FileResult reports the outcome for one dictionary.
type FileResult struct {
	Path         string
	Status       FileStatus
	Changed      int
	Entries      int
	AlreadyCoded int
	Unmapped     int
	// Destination is where the patched content was written.
	Destination string
	BackupPath  string
	// Err is set when the file could not be read.
	Err error
}

// Summary aggregates a run.
type Summary struct {
	RunID        string
	DryRun       bool
	Files        []FileResult
	TotalChanged int
}

// Processed returns the number of dictionaries the run selected, including
// those it skipped.
func (s *Summary) Processed() int {
	if s == nil {
		return 0
	}
	return len(s.Files)
}
