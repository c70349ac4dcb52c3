package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "export TARGET",
		Short: "Write a copy of the store to another path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			if !app.Store.Export(target, force) {
				return fmt.Errorf("export to %s refused", target)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported store to %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing target file")
	return cmd
}
