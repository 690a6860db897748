// Package patcher drives a patch run: it loads the auxiliary-code table,
// selects dictionary files, merges codes into each one, and reports or
// writes the result.
//
// Writing runs hold a run lock in the state directory, pass preflight
// checks before touching any file, replace files atomically, and record
// each write in the run journal when it is enabled. Dry runs print unified
// diffs and leave the filesystem alone.
package patcher
