package sorter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"vidsort/internal/inbox"
	"vidsort/internal/logging"
)

// Summary tallies one session.
type Summary struct {
	Total int
	// Offered counts files the user answered for, whatever the outcome.
	Offered int
	Moved   int
	Skipped int
	Undone  int
	Failed  int
	// Quit is set when the session ended on the quit key or closed input
	// rather than by running out of files.
	Quit bool
}

func (s Summary) String() string {
	return fmt.Sprintf("Processed %d of %d file(s): %d moved, %d skipped, %d undone, %d failed",
		s.Offered, s.Total, s.Moved, s.Skipped, s.Undone, s.Failed)
}

type action int

const (
	actionSkip action = iota
	actionMove
	actionUndo
	actionQuit
)

func (s *Sorter) classify(input string) (action, string) {
	if dir, ok := s.destinations[input]; ok {
		return actionMove, dir
	}
	switch input {
	case s.undoKey:
		return actionUndo, ""
	case s.quitKey:
		return actionQuit, ""
	default:
		return actionSkip, ""
	}
}

// Run sorts the eligible files of sourceDir until they are exhausted or the
// user quits. A failed move is reported and the session moves on to the next
// file; only an unreadable source directory or input stream ends Run with an
// error.
func (s *Sorter) Run(ctx context.Context, sourceDir string) (Summary, error) {
	var summary Summary

	fmt.Fprint(s.out, s.Legend())

	entries, err := inbox.List(sourceDir, s.filter)
	if err != nil {
		return summary, err
	}
	summary.Total = len(entries)
	if len(entries) == 0 {
		fmt.Fprintf(s.out, "No %s files found in the directory.\n", s.filter.Extension)
		s.logger.Info("no eligible files", logging.String("source", sourceDir))
		return summary, nil
	}
	s.logger.Info("session started",
		logging.String("source", sourceDir),
		logging.Int("files", len(entries)),
		logging.String(logging.FieldEventType, "session_started"),
	)

	bar := newProgress(s.out, len(entries), s.showProgress)
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		fmt.Fprintf(s.out, "[%d/%d] Opening %s (%s)...\n", i+1, len(entries), entry.Path, humanize.Bytes(uint64(entry.Size)))
		if err := s.previewer.Preview(ctx, entry.Path); err != nil {
			logging.WarnWithContext(s.logger, "preview failed", "preview_failed",
				logging.String("path", entry.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check preview.command or run 'vidsort check'"),
				logging.String(logging.FieldImpact, "file offered without a preview"),
			)
			fmt.Fprintf(s.out, "Preview unavailable: %v\n", err)
		}

		fmt.Fprint(s.out, "Your choice: ")
		input, err := s.readChoice()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, "Input closed. Exiting...")
			summary.Quit = true
			break
		}
		if err != nil {
			return summary, fmt.Errorf("read input: %w", err)
		}

		if s.dispatch(input, entry, &summary) {
			summary.Quit = true
			break
		}
		summary.Offered++
		bar.step()
	}

	s.logger.Info("session finished",
		logging.Int("moved", summary.Moved),
		logging.Int("skipped", summary.Skipped),
		logging.Int("undone", summary.Undone),
		logging.Int("failed", summary.Failed),
		logging.Bool("quit", summary.Quit),
		logging.String(logging.FieldEventType, "session_finished"),
	)
	return summary, nil
}

// dispatch acts on one normalized answer and reports whether to stop.
func (s *Sorter) dispatch(input string, entry inbox.Entry, summary *Summary) bool {
	act, destDir := s.classify(input)
	switch act {
	case actionMove:
		result, err := s.Move(entry.Path, destDir)
		if err != nil {
			summary.Failed++
			logging.ErrorWithContext(s.logger, "move failed", "move_failed",
				logging.String("source", entry.Path),
				logging.String("destination_dir", destDir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the destination is writable and has free space"),
			)
			fmt.Fprintf(s.out, "Error moving %s: %v. File left in place.\n", entry.Name, err)
			return false
		}
		summary.Moved++
		if result.Conflicted {
			fmt.Fprintf(s.out, "Name conflict: %s already exists in %s; saved as %s.\n",
				entry.Name, destDir, filepath.Base(result.Destination))
		}
		if result.MetadataErr != nil {
			fmt.Fprintf(s.out, "Warning: original timestamps not restored: %v\n", result.MetadataErr)
		}
		fmt.Fprintf(s.out, "Moved %s to %s.\n", entry.Path, destDir)
	case actionUndo:
		result, err := s.Undo()
		switch {
		case errors.Is(err, ErrNothingToUndo):
			fmt.Fprintln(s.out, "No file move to undo.")
		case err != nil:
			fmt.Fprintf(s.out, "Undo failed: %v\n", err)
		default:
			summary.Undone++
			if result.MetadataErr != nil {
				fmt.Fprintf(s.out, "Warning: original timestamps not restored: %v\n", result.MetadataErr)
			}
			fmt.Fprintf(s.out, "Moved %s back to %s.\n", filepath.Base(result.From), result.To)
		}
	case actionQuit:
		fmt.Fprintln(s.out, "Exiting...")
		s.logger.Info("quit requested", logging.String("at", entry.Path))
		return true
	default:
		summary.Skipped++
		s.logger.Debug("file skipped",
			logging.String("path", entry.Path),
			logging.String("input", input),
			logging.String(logging.FieldEventType, "file_skipped"),
		)
		fmt.Fprintln(s.out, "skipping")
	}
	return false
}

// readChoice reads one line and normalizes it. A final line without a
// newline is still returned; io.EOF is only reported once nothing is left.
func (s *Sorter) readChoice() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return s.normalize(line), nil
}

func (s *Sorter) normalize(input string) string {
	return s.lower.String(strings.TrimSpace(input))
}
