package config

import "runtime"

const (
	defaultLogDir           = "~/.local/share/vidsort/logs"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultExtension        = ".mp4"
	// Resource-fork sidecars written by macOS on non-HFS volumes.
	defaultHiddenPrefix = "._"
	defaultUndoKey      = "u"
	defaultQuitKey      = "q"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	command, args := defaultPreviewCommand(runtime.GOOS)
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Sorting: Sorting{
			Extension:    defaultExtension,
			HiddenPrefix: defaultHiddenPrefix,
			UndoKey:      defaultUndoKey,
			QuitKey:      defaultQuitKey,
		},
		Preview: Preview{
			Enabled: true,
			Command: command,
			Args:    args,
			Wait:    true,
		},
		Destinations: map[string]string{},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

func defaultPreviewCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "qlmanage", []string{"-p"}
	default:
		return "xdg-open", nil
	}
}
