package fileutil

import (
	"fmt"
	"os"
	"time"
)

// Times is the timestamp metadata carried across a move.
type Times struct {
	Modified time.Time
	Accessed time.Time
}

// StatTimes captures the modification and access times of path.
func StatTimes(path string) (Times, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Times{}, err
	}
	return Times{
		Modified: info.ModTime(),
		Accessed: accessTime(path, info),
	}, nil
}

// RestoreTimes re-applies previously captured timestamps to path.
func RestoreTimes(path string, times Times) error {
	if times.Modified.IsZero() {
		return fmt.Errorf("restore times for %s: no modification time captured", path)
	}
	accessed := times.Accessed
	if accessed.IsZero() {
		accessed = times.Modified
	}
	if err := os.Chtimes(path, accessed, times.Modified); err != nil {
		return fmt.Errorf("restore times for %s: %w", path, err)
	}
	return nil
}
