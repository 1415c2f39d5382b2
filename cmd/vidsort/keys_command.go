package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidsort/internal/sorter"
)

func newKeysCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the key to directory mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), sorter.RenderLegend(cfg.Destinations, cfg.Sorting.UndoKey, cfg.Sorting.QuitKey))
			return nil
		},
	}
}
