// Package config loads, normalizes, and validates vidsort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the
// key-to-destination mapping, the reserved session commands, the preview tool
// invocation, and logging settings so the CLI can resolve everything in one
// pass.
//
// Directory existence is deliberately left to the preflight package: loading a
// config never touches destination directories.
package config
