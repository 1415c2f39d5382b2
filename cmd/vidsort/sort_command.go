package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vidsort/internal/config"
	"vidsort/internal/logging"
	"vidsort/internal/preflight"
	"vidsort/internal/preview"
	"vidsort/internal/sorter"
)

type sortFlags struct {
	extension string
	noPreview bool
	logLevel  string
}

const runIDLayout = "20060102T150405.000Z"

func runSort(cmd *cobra.Command, ctx *commandContext, flags sortFlags, sourceArg string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if strings.TrimSpace(flags.extension) != "" {
		cfg.Sorting.Extension = config.NormalizeExtension(flags.extension)
	}
	if flags.noPreview {
		cfg.Preview.Enabled = false
	}

	source, err := config.ExpandPath(strings.TrimSpace(sourceArg))
	if err != nil {
		return fmt.Errorf("resolve source directory: %w", err)
	}
	if err := preflight.ValidateSession(source, cfg.Destinations); err != nil {
		return err
	}

	lock, err := sorter.AcquireLock(cfg.Paths.LogDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	runID := time.Now().UTC().Format(runIDLayout)
	logger, closer, logPath, err := logging.NewFromConfig(cfg, runID, uuid.NewString(), flags.logLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()
	if removed := logging.CleanupOldLogs(logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, logPath); removed > 0 {
		logger.Debug("pruned old session logs", logging.Int("removed", removed))
	}
	logger.Info("vidsort session starting",
		logging.String("source", source),
		logging.String("config_path", ctx.configPath),
		logging.Bool("config_found", ctx.configSeen),
		logging.String("extension", cfg.Sorting.Extension),
		logging.Bool("preview", cfg.Preview.Enabled),
		logging.String("lock_path", lock.Path()),
	)

	previewer, err := preview.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("configure preview: %w", err)
	}

	out := cmd.OutOrStdout()
	opts := sorter.OptionsFromConfig(cfg)
	opts.Previewer = previewer
	opts.In = cmd.InOrStdin()
	opts.Out = out
	opts.Logger = logger
	opts.ShowProgress = shouldColorize(out)

	s, err := sorter.New(opts)
	if err != nil {
		return err
	}
	summary, err := s.Run(cmd.Context(), source)
	if err != nil {
		logging.ErrorWithContext(logger, "sort session aborted", "session_aborted", logging.Error(err))
		return err
	}
	if summary.Total > 0 {
		fmt.Fprintln(out, summary.String())
	}
	return nil
}
