package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"vidsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	missing map[string]bool
}

// NewConfig produces a config seeded with unique temp directories per test:
// a source directory, a log directory, and "k" (keep) and "d" (discard)
// destinations that already exist. Preview is disabled unless an option
// turns it back on.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Preview.Enabled = false
	cfgVal.Destinations = map[string]string{
		"k": filepath.Join(base, "keep"),
		"d": filepath.Join(base, "discard"),
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
		missing: map[string]bool{},
	}
	mustMkdir(t, SourceDir(&cfgVal))

	for _, opt := range opts {
		opt(builder)
	}
	for key, dir := range builder.cfg.Destinations {
		if builder.missing[key] {
			continue
		}
		mustMkdir(t, dir)
	}

	return builder.cfg
}

// WithDestinations replaces the destination map. Each directory is created
// under the base temp dir unless it is absolute.
func WithDestinations(destinations map[string]string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Destinations = make(map[string]string, len(destinations))
		for key, dir := range destinations {
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(b.baseDir, dir)
			}
			b.cfg.Destinations[key] = dir
		}
	}
}

// WithMissingDestination maps key to a directory that is never created.
func WithMissingDestination(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Destinations[key] = filepath.Join(b.baseDir, "missing-"+key)
		b.missing[key] = true
	}
}

// WithPreview enables preview using the given argv.
func WithPreview(argv ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Preview.Enabled = true
		if len(argv) > 0 {
			b.cfg.Preview.Command = argv[0]
			b.cfg.Preview.Args = argv[1:]
		}
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the configured preview command
// is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{b.cfg.Preview.Command}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

// SourceDir returns the directory tests fill with files to sort.
func SourceDir(cfg *config.Config) string {
	return filepath.Join(BaseDir(cfg), "inbox")
}

func mustMkdir(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}
