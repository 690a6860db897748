package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"auxpatch/internal/patcher"
)

func newTableCommand(ctx *commandContext) *cobra.Command {
	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Auxiliary code table utilities",
	}
	tableCmd.AddCommand(newTableStatsCommand(ctx))
	return tableCmd
}

func newTableStatsCommand(ctx *commandContext) *cobra.Command {
	var tablePath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report how the rows of a code table are interpreted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tablePath == "" {
				return fmt.Errorf("%w: --table is required", patcher.ErrUsage)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			codes, err := patcher.LoadTable(cfg, tablePath)
			if err != nil {
				return err
			}
			stats := codes.Stats()
			rows := [][]string{
				{"Rows read", strconv.Itoa(stats.Lines)},
				{"Blank", strconv.Itoa(stats.Blank)},
				{"Comments", strconv.Itoa(stats.Comments)},
				{"Malformed (skipped)", strconv.Itoa(stats.Malformed)},
				{"Duplicates (ignored)", strconv.Itoa(stats.Duplicates)},
				{"Characters mapped", strconv.Itoa(stats.Kept)},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Table: %s\n", tablePath)
			if cfg.Patch.NormalizeKeys != "" {
				fmt.Fprintf(out, "Key normalization: %s\n", cfg.Patch.NormalizeKeys)
			}
			fmt.Fprintln(out, renderTable([]string{"Metric", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Auxiliary code table to inspect")
	return cmd
}
