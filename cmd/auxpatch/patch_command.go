package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"auxpatch/internal/patcher"
)

type patchFlags struct {
	table   string
	file    string
	dir     string
	outDir  string
	inPlace bool
	backup  bool
	dryRun  bool
	summary bool
}

func (f *patchFlags) bindSelection(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.table, "table", "", "Auxiliary code table (character<TAB>code per line)")
	cmd.Flags().StringVar(&f.file, "file", "", "Single dictionary to update (mutually exclusive with --dir)")
	cmd.Flags().StringVar(&f.dir, "dir", "", "Directory of dictionaries to process (non-recursive)")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "Print a per-file summary table")
}

func (f *patchFlags) options() patcher.Options {
	return patcher.Options{
		TablePath: f.table,
		File:      f.file,
		Dir:       f.dir,
		OutDir:    f.outDir,
		InPlace:   f.inPlace,
		Backup:    f.backup,
		DryRun:    f.dryRun,
	}
}

func newPatchCommand(ctx *commandContext) *cobra.Command {
	var flags patchFlags

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Append auxiliary codes to dictionary entries",
		Long: `Append auxiliary codes to the pronunciation field of dictionary entries.

By default patched copies are written to ./auxified/moqi (single file) or
./auxified (directory). Use --inplace to overwrite the originals and --backup
to keep a timestamped copy of each one first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, ctx, &flags)
		},
	}

	flags.bindSelection(cmd)
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "Output directory for modified files")
	cmd.Flags().BoolVar(&flags.inPlace, "inplace", false, "Overwrite the original files")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "Write a timestamped backup before each in-place write")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print unified diffs and do not modify files")
	return cmd
}

func newDiffCommand(ctx *commandContext) *cobra.Command {
	var flags patchFlags

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the changes a patch run would make",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.dryRun = true
			return runPatch(cmd, ctx, &flags)
		},
	}

	flags.bindSelection(cmd)
	return cmd
}

func runPatch(cmd *cobra.Command, ctx *commandContext, flags *patchFlags) error {
	p, cfg, err := ctx.newPatcher(cmd)
	if err != nil {
		return err
	}
	summary, err := p.Run(cmd.Context(), flags.options())
	if err != nil {
		return err
	}

	if (flags.summary || cfg.Output.Summary) && summary.Processed() > 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
	}
	return nil
}

func renderSummary(summary *patcher.Summary) string {
	headers := []string{"File", "Status", "Entries", "Changed", "Coded", "Unmapped", "Destination"}
	rows := make([][]string, 0, len(summary.Files))
	for _, file := range summary.Files {
		status := string(file.Status)
		if file.Err != nil {
			status = fmt.Sprintf("%s (%v)", status, file.Err)
		}
		rows = append(rows, []string{
			filepath.Base(file.Path),
			status,
			strconv.Itoa(file.Entries),
			strconv.Itoa(file.Changed),
			strconv.Itoa(file.AlreadyCoded),
			strconv.Itoa(file.Unmapped),
			file.Destination,
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}
