package preflight

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"vidsort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// SourceError reports a missing or unusable source directory.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("directory %s does not exist", e.Path)
}

func (e *SourceError) Unwrap() error { return e.Err }

// DestinationError reports a mapped destination directory that is missing.
type DestinationError struct {
	Key  string
	Path string
	Err  error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("destination directory for key '%s' (%s) does not exist", e.Key, e.Path)
}

func (e *DestinationError) Unwrap() error { return e.Err }

// ValidateSession checks the source directory and then every destination.
// All destinations are checked even after a failure so the returned error
// names each bad key.
func ValidateSession(source string, destinations map[string]string) error {
	if err := requireDir(source); err != nil {
		return &SourceError{Path: source, Err: err}
	}

	keys := make([]string, 0, len(destinations))
	for key := range destinations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		if err := requireDir(destinations[key]); err != nil {
			errs = append(errs, &DestinationError{Key: key, Path: destinations[key], Err: err})
		}
	}
	return errors.Join(errs...)
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// RunAll executes every check relevant to a session over source.
func RunAll(cfg *config.Config, source string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if source != "" {
		results = append(results, CheckDirectoryAccess("Source directory", source))
	}
	for _, key := range cfg.DestinationKeys() {
		results = append(results, CheckDirectoryAccess(fmt.Sprintf("Destination '%s'", key), cfg.Destinations[key]))
	}
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	if cfg.Preview.Enabled {
		results = append(results, CheckPreviewTool(cfg))
	}
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
