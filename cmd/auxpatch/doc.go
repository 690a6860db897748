// Package main hosts the auxpatch CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration and logging once, then hands
// off to internal/patcher for patch runs and restores, and to the journal for
// history. Commands own flag parsing and output formatting only.
package main
