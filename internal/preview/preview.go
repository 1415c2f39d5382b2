// Package preview launches the external viewer shown before each prompt.
//
// Previewing is best-effort: callers log a returned error and carry on.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"vidsort/internal/config"
)

// Previewer shows a file to the user.
type Previewer interface {
	Preview(ctx context.Context, path string) error
}

// Command runs an external viewer with the file path appended to argv.
type Command struct {
	argv []string
	wait bool
	// onExit, when set, receives the exit status of a viewer started without wait.
	onExit func(error)
}

// NewCommand builds a Command previewer. When wait is false the viewer is
// started and released so the prompt appears immediately.
func NewCommand(argv []string, wait bool) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("preview command is required")
	}
	return &Command{argv: append([]string(nil), argv...), wait: wait}, nil
}

// FromConfig returns the previewer described by cfg, or Nop when preview is
// disabled.
func FromConfig(cfg *config.Config) (Previewer, error) {
	if cfg == nil || !cfg.Preview.Enabled {
		return Nop{}, nil
	}
	return NewCommand(cfg.PreviewArgv(), cfg.Preview.Wait)
}

// Preview runs the viewer on path. Output is discarded and stdin is not shared
// so the viewer cannot consume the user's answer.
func (c *Command) Preview(ctx context.Context, path string) error {
	args := append(append([]string(nil), c.argv[1:]...), path)
	var cmd *exec.Cmd
	if c.wait {
		cmd = exec.CommandContext(ctx, c.argv[0], args...)
	} else {
		cmd = exec.Command(c.argv[0], args...)
	}
	cmd.Stdin = nil
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if c.wait {
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("preview %s: %w", c.argv[0], err)
		}
		return nil
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("preview %s: %w", c.argv[0], err)
	}
	go func() {
		err := cmd.Wait()
		if c.onExit != nil {
			c.onExit(err)
		}
	}()
	return nil
}

// Nop skips previewing.
type Nop struct{}

func (Nop) Preview(context.Context, string) error { return nil }
