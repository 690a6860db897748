package main

import (
	"github.com/spf13/cobra"
)

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <path>",
		Short: "Restore a dictionary from its most recent recorded backup",
		Long: `Restore a dictionary from the newest backup recorded in the run journal.

Only in-place runs with --backup record backups.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := ctx.newPatcher(cmd)
			if err != nil {
				return err
			}
			_, err = p.Restore(cmd.Context(), args[0])
			return err
		},
	}
}
