package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrDestinationExists is returned when a move would overwrite an existing file.
var ErrDestinationExists = errors.New("destination already exists")

// UniquePath returns the first unused path for name inside dir. When name is
// taken, "_1", "_2", ... is inserted before the extension. conflicted reports
// whether a suffix was needed.
func UniquePath(dir, name string) (path string, conflicted bool, err error) {
	candidate := filepath.Join(dir, name)
	taken, err := Exists(candidate)
	if err != nil {
		return "", false, err
	}
	if !taken {
		return candidate, false, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate = filepath.Join(dir, stem+"_"+strconv.Itoa(n)+ext)
		taken, err := Exists(candidate)
		if err != nil {
			return "", false, err
		}
		if !taken {
			return candidate, true, nil
		}
	}
}

// MoveFile moves src to dst without ever replacing an existing dst. Moves that
// cross filesystems fall back to a verified copy followed by removal of src.
func MoveFile(src, dst string) error {
	taken, err := Exists(dst)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
	}

	err = os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("copy across filesystems: %w", err)
	}
	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
