// Package sorter runs the interactive triage session.
//
// A Sorter walks the eligible files of a source directory in name order. For
// each file it launches the preview, reads one line from the user, and then
// moves the file into the destination mapped to that key, undoes the previous
// move, quits, or skips. Only the most recent move can be undone; the record
// is a single field on the Sorter, overwritten by every move and cleared by
// every undo attempt.
//
// Everything is synchronous. The filesystem is assumed to have no other
// writer for the duration of a session, which the session lock enforces
// between vidsort processes.
package sorter
