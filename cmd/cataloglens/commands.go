package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: clean, analyze, and render charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensure()
			if err != nil {
				return err
			}

			res, err := p.RunAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printQuality(out, res.Quality)
			printSummary(out, res.Summary)
			printAnomalies(out, res.Anomalies)
			fmt.Fprintf(out, "charts written: %d under %s\n", len(res.Charts), ctx.cfg.Paths.ChartsDir)
			fmt.Fprintf(out, "reports written under %s\n", ctx.cfg.Paths.OutputDir)
			return nil
		},
	}
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean the raw catalog and write the cleaned CSV plus quality report",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensure()
			if err != nil {
				return err
			}

			catalog, quality, err := p.RunClean(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printQuality(out, quality)
			fmt.Fprintf(out, "cleaned catalog: %d titles -> %s\n", catalog.Len(), ctx.cfg.Paths.CleanedCSV())
			return nil
		},
	}
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Summarize the cleaned catalog and flag anomalies",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensure()
			if err != nil {
				return err
			}

			res, err := p.RunAnalyze(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, res.Summary)
			printAnomalies(out, res.Anomalies)
			fmt.Fprintf(out, "reports written under %s\n", ctx.cfg.Paths.OutputDir)
			return nil
		},
	}
}

func newChartsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "Render the chart set for the cleaned catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.ensure()
			if err != nil {
				return err
			}

			rendered, err := p.RunCharts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range rendered {
				fmt.Fprintln(out, path)
			}
			fmt.Fprintf(out, "charts written: %d\n", len(rendered))
			return nil
		},
	}
}
