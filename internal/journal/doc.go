// Package journal records written dictionary files in SQLite so past runs
// can be listed and in-place edits rolled back from their backups.
//
// Every in-place or output-directory write appends one row holding the run
// id, the target, the number of lines changed, and the backup or output
// path. Dry runs are never recorded. Schema changes ship as numbered files
// under migrations/ and are applied in order when the store opens.
//
// The journal is advisory: callers log journal failures and carry on, so a
// broken database never blocks a patch run.
package journal
