// Package preflight validates the filesystem before a sort session mutates it.
//
// ValidateSession is the gate the sort command runs: the source directory and
// every mapped destination must exist before the first file is offered.
// Individual checks (CheckDirectoryAccess, CheckPreviewTool) back the
// "vidsort check" report.
package preflight
