// Package dictmerge appends auxiliary codes to the pronunciation column of
// dictionary lines.
//
// Dictionary files are handled as flat text, never parsed as YAML. Each line
// is classified on its own: blank lines, '#' comments and the "---" document
// separator pass through untouched, and so does anything with fewer than
// three tab-separated fields. Entry lines whose character has a code gain a
// ";code" suffix on the pronunciation unless the pronunciation already
// carries one, which makes Merge idempotent.
//
// Merge never adds, drops or reorders lines, and line terminators are kept
// exactly as read.
package dictmerge
