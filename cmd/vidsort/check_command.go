package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidsort/internal/config"
	"vidsort/internal/deps"
	"vidsort/internal/inbox"
	"vidsort/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [source-dir]",
		Short: "Check directories and the preview viewer without moving anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var source string
			if len(args) == 1 {
				source, err = config.ExpandPath(strings.TrimSpace(args[0]))
				if err != nil {
					return fmt.Errorf("resolve source directory: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cfg, source)
			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range results {
				fmt.Fprintln(out, renderResultLine(result, colorize))
			}
			if source != "" && len(results) > 0 && results[0].Passed {
				entries, err := inbox.List(source, inbox.Filter{
					Extension:    cfg.Sorting.Extension,
					HiddenPrefix: cfg.Sorting.HiddenPrefix,
				})
				if err == nil {
					fmt.Fprintln(out, renderStatusLine("Eligible files", statusInfo,
						fmt.Sprintf("%d %s file(s)", len(entries), cfg.Sorting.Extension), colorize))
				}
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			statuses := deps.CheckBinaries([]deps.Requirement{deps.PreviewRequirement(cfg)})
			fmt.Fprintln(out, renderDependencyTable(statuses, cfg.Preview.Enabled))

			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
