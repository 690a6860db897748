// Package preflight verifies that the directories a patch run writes into
// are usable before any file is touched.
//
// In-place runs replace each target through a temp file and a rename, so the
// directory holding the target must be writable and searchable, and the
// target itself writable. Output-directory runs need the output directory.
// Writing runs also need the state directory for the journal and the lock.
//
// A failed check aborts the run before the first write, which keeps a batch
// from stopping half way through.
package preflight
