package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetCmd(app *App) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "set SECTION KEY VALUE",
		Short: "Store one value",
		Long: `Set writes VALUE under SECTION.KEY, creating the section when absent,
and saves the whole store with keys sorted inside every section.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Store.Write(args[0], args[1], args[2], !noSave)
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s = %s\n", args[0], args[1], args[2])
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "keep the change in memory instead of rewriting the file")
	return cmd
}
