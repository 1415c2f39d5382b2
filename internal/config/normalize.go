package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSorting()
	c.normalizePreview()
	if err := c.normalizeDestinations(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSorting() {
	c.Sorting.Extension = NormalizeExtension(c.Sorting.Extension)

	// An empty hidden prefix is allowed; it disables the exclusion.
	c.Sorting.HiddenPrefix = strings.TrimSpace(c.Sorting.HiddenPrefix)

	c.Sorting.UndoKey = NormalizeKey(c.Sorting.UndoKey)
	if c.Sorting.UndoKey == "" {
		c.Sorting.UndoKey = defaultUndoKey
	}
	c.Sorting.QuitKey = NormalizeKey(c.Sorting.QuitKey)
	if c.Sorting.QuitKey == "" {
		c.Sorting.QuitKey = defaultQuitKey
	}
}

func (c *Config) normalizePreview() {
	c.Preview.Command = strings.TrimSpace(c.Preview.Command)
	args := c.Preview.Args[:0]
	for _, arg := range c.Preview.Args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	c.Preview.Args = args
}

func (c *Config) normalizeDestinations() error {
	normalized := make(map[string]string, len(c.Destinations))
	for rawKey, rawDir := range c.Destinations {
		key := NormalizeKey(rawKey)
		if _, dup := normalized[key]; dup {
			return fmt.Errorf("destinations: key %q is defined more than once", key)
		}
		dir, err := expandPath(strings.TrimSpace(rawDir))
		if err != nil {
			return fmt.Errorf("destinations.%s: %w", rawKey, err)
		}
		normalized[key] = dir
	}
	c.Destinations = normalized
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

// NormalizeKey applies the same trimming and case folding used for user input.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// NormalizeExtension lowercases ext and ensures a leading dot. An empty value
// falls back to the default extension.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
