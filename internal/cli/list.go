package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [SECTION]",
		Short: "List sections, or the keys of one section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range app.Store.Sections() {
					fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", name)
				}
				return nil
			}

			section := args[0]
			items := app.Store.Items(section)
			if items == nil {
				return fmt.Errorf("no section named %s", section)
			}

			keys := make([]string, 0, len(items))
			for k := range items {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, items[k])
			}
			return nil
		},
	}
	return cmd
}
