package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSorting(); err != nil {
		return err
	}
	if err := c.validateDestinations(); err != nil {
		return err
	}
	if err := c.validatePreview(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSorting() error {
	if c.Sorting.Extension == "." {
		return errors.New("sorting.extension must name a file extension")
	}
	if strings.ContainsAny(c.Sorting.Extension, `/\`) {
		return fmt.Errorf("sorting.extension %q must not contain path separators", c.Sorting.Extension)
	}
	if utf8.RuneCountInString(c.Sorting.UndoKey) != 1 {
		return fmt.Errorf("sorting.undo_key %q must be a single character", c.Sorting.UndoKey)
	}
	if utf8.RuneCountInString(c.Sorting.QuitKey) != 1 {
		return fmt.Errorf("sorting.quit_key %q must be a single character", c.Sorting.QuitKey)
	}
	if c.Sorting.UndoKey == c.Sorting.QuitKey {
		return fmt.Errorf("sorting.undo_key and sorting.quit_key must differ (both %q)", c.Sorting.UndoKey)
	}
	return nil
}

func (c *Config) validateDestinations() error {
	if len(c.Destinations) == 0 {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/vidsort/config.toml"
		}
		return fmt.Errorf("destinations must map at least one key to a directory. Edit %s (create with 'vidsort config init')", defaultPath)
	}
	for _, key := range c.DestinationKeys() {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("destinations: key %q must be a single character", key)
		}
		switch key {
		case c.Sorting.UndoKey:
			return fmt.Errorf("destinations: key %q is reserved for undo", key)
		case c.Sorting.QuitKey:
			return fmt.Errorf("destinations: key %q is reserved for quit", key)
		}
		if c.Destinations[key] == "" {
			return fmt.Errorf("destinations: key %q has no directory", key)
		}
	}
	return nil
}

func (c *Config) validatePreview() error {
	if c.Preview.Enabled && c.Preview.Command == "" {
		return errors.New("preview.command must be set when preview.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
