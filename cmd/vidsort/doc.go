// Package main hosts the vidsort CLI entrypoint and command graph.
//
// The root command runs an interactive sort session over one source
// directory. Subcommands cover configuration scaffolding, printing the key
// legend, and a preflight report that checks directories and the preview
// viewer without moving anything.
package main
