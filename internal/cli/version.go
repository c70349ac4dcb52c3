package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Populated at build time via -ldflags.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Build version: %s\n", orNA(buildVersion))
			fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", orNA(buildDate))
			fmt.Fprintf(cmd.OutOrStdout(), "Build commit: %s\n", orNA(buildCommit))
		},
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
