// Package inbox enumerates the files a sort session offers to the user.
package inbox

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one eligible file in the source directory.
type Entry struct {
	Name string
	Path string
	Size int64
}

// Filter selects eligible names.
type Filter struct {
	// Extension is matched case-insensitively against the end of the name.
	Extension string
	// HiddenPrefix excludes names such as "._clip.mp4". Empty disables it.
	HiddenPrefix string
}

// Match reports whether name is eligible under f.
func (f Filter) Match(name string) bool {
	if f.HiddenPrefix != "" && strings.HasPrefix(name, f.HiddenPrefix) {
		return false
	}
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(f.Extension))
}

// List returns the eligible regular files directly inside dir, sorted by name.
// No match yields an empty slice and a nil error.
func List(dir string, filter Filter) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if !filter.Match(name) {
			continue
		}
		path := filepath.Join(dir, name)
		// Follow symlinks so a linked video is offered like a regular one.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{
			Name: name,
			Path: path,
			Size: info.Size(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
