// Package auxmap loads auxiliary-code tables into an immutable lookup map.
//
// A table is UTF-8 text with one tab-separated row per character:
// the character, its auxiliary code, and any number of ignored trailing
// columns. Blank lines and lines starting with '#' are skipped, as are rows
// with fewer than two columns or an empty character or code. When a character
// appears on several rows the first row wins.
//
// Loading never fails on malformed content; only read errors are returned.
package auxmap
