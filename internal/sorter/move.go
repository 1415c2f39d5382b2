package sorter

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"vidsort/internal/fileutil"
	"vidsort/internal/logging"
)

// ErrNothingToUndo is returned by Undo when no move has been recorded.
var ErrNothingToUndo = errors.New("no file move to undo")

// MoveError describes a failed move or undo of a single file.
type MoveError struct {
	Op   string
	Path string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// MoveResult reports a completed move.
type MoveResult struct {
	Source      string
	Destination string
	// Conflicted is set when the base name was taken and a numbered name used.
	Conflicted bool
	// MetadataErr is set when timestamps could not be carried over. The move
	// itself still succeeded.
	MetadataErr error
}

// UndoResult reports a reverted move.
type UndoResult struct {
	From        string
	To          string
	MetadataErr error
}

// Move moves src into destDir, keeping its base name unless that name is
// taken, and re-applies the original timestamps. On success the move becomes
// the one Undo reverts.
func (s *Sorter) Move(src, destDir string) (MoveResult, error) {
	times, captureErr := fileutil.StatTimes(src)
	if errors.Is(captureErr, fs.ErrNotExist) {
		return MoveResult{}, &MoveError{Op: "move", Path: src, Err: captureErr}
	}

	dst, conflicted, err := fileutil.UniquePath(destDir, filepath.Base(src))
	if err != nil {
		return MoveResult{}, &MoveError{Op: "move", Path: src, Err: err}
	}
	if conflicted {
		s.logger.Info("name conflict at destination",
			logging.String("source", src),
			logging.String("destination", dst),
			logging.String(logging.FieldEventType, "name_conflict"),
		)
	}

	if err := fileutil.MoveFile(src, dst); err != nil {
		return MoveResult{}, &MoveError{Op: "move", Path: src, Err: err}
	}

	result := MoveResult{Source: src, Destination: dst, Conflicted: conflicted}
	if err := carryTimes(dst, times, captureErr); err != nil {
		result.MetadataErr = err
		logging.WarnWithContext(s.logger, "timestamps not restored after move", "metadata_restore_failed",
			logging.String("path", dst),
			logging.Error(err),
			logging.String(logging.FieldImpact, "moved file shows the time of the move instead of its original time"),
		)
	}

	s.last = &MoveRecord{MovedTo: dst, Original: src}
	s.logger.Info("file moved",
		logging.String("source", src),
		logging.String("destination", dst),
		logging.Bool("conflict", conflicted),
		logging.String(logging.FieldEventType, "file_moved"),
	)
	return result, nil
}

// Undo moves the last moved file back to where it came from. The record is
// cleared whether or not the move back succeeds, so a failed undo is never
// retried against the same record.
func (s *Sorter) Undo() (UndoResult, error) {
	if s.last == nil {
		return UndoResult{}, ErrNothingToUndo
	}
	record := *s.last
	s.last = nil

	times, captureErr := fileutil.StatTimes(record.MovedTo)
	if err := fileutil.MoveFile(record.MovedTo, record.Original); err != nil {
		logging.ErrorWithContext(s.logger, "undo failed", "undo_failed",
			logging.String("moved_to", record.MovedTo),
			logging.String("original", record.Original),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "move the file back manually"),
		)
		return UndoResult{}, &MoveError{Op: "undo", Path: record.MovedTo, Err: err}
	}

	result := UndoResult{From: record.MovedTo, To: record.Original}
	if err := carryTimes(record.Original, times, captureErr); err != nil {
		result.MetadataErr = err
		logging.WarnWithContext(s.logger, "timestamps not restored after undo", "metadata_restore_failed",
			logging.String("path", record.Original),
			logging.Error(err),
		)
	}
	s.logger.Info("move undone",
		logging.String("from", record.MovedTo),
		logging.String("to", record.Original),
		logging.String(logging.FieldEventType, "undo_applied"),
	)
	return result, nil
}

// carryTimes re-applies times captured before a move. When the capture itself
// failed, that error is reported instead of attempting a restore.
func carryTimes(path string, times fileutil.Times, captureErr error) error {
	if captureErr != nil {
		return fmt.Errorf("timestamps for %s not captured before move: %w", path, captureErr)
	}
	return fileutil.RestoreTimes(path, times)
}
