package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cataloglens/internal/config"
	"cataloglens/internal/infrastructure"
	"cataloglens/internal/pipeline"
)

// commandContext lazily builds the shared config, logger, and pipeline so
// flag parsing and help never touch the filesystem.
type commandContext struct {
	configFlag *string

	cfg  *config.Config
	pipe *pipeline.Pipeline
}

func (c *commandContext) ensure() (*pipeline.Pipeline, error) {
	if c.pipe != nil {
		return c.pipe, nil
	}

	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	c.cfg = cfg
	c.pipe = pipeline.New(logger, cfg)
	return c.pipe, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "cataloglens",
		Short:         "Clean, summarize, and audit streaming catalog exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newCleanCommand(ctx))
	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newChartsCommand(ctx))

	return rootCmd
}
