// Package config loads, normalizes, and validates auxpatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from an explicit path, the user config
// directory, or an auxpatch.toml in the working directory. The Config type
// gathers the knobs the patch run, the run journal, and logging need so the
// command layer resolves them in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical extension lists, and clear validation errors.
package config
