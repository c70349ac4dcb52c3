package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty store file",
		Long: `Init creates an empty store file at the configured path so later runs
can open it without prompting. An existing file is refused unless --force
is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.configure(); err != nil {
				return err
			}
			path := app.Config.Path

			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("store file already exists (use --force to recreate)")
			} else if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(path, nil, 0o644); err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty store at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "recreate the store file even if it exists")
	return cmd
}
