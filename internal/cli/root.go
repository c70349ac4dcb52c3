// Package cli implements the confkeeper command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/store"
)

// rootFlags carries the persistent flag values shared by every subcommand.
// interactiveSet records whether --interactive appeared on the command line:
// an explicit false is indistinguishable from "not set" in the merged config
// (false is the bool zero value), so the flag is applied directly when set.
type rootFlags struct {
	file           string
	encoding       string
	interactive    bool
	interactiveSet bool
}

// asOverrides converts the flag values into a config overlay.
func (f *rootFlags) asOverrides() *config.Config {
	return &config.Config{
		Path:        f.file,
		Encoding:    f.encoding,
		Interactive: f.interactive,
	}
}

// App holds the state shared across all commands. It is populated by the
// root command's PersistentPreRunE before any subcommand runs.
type App struct {
	Config *config.Config
	Store  *store.Store
	Log    *logger.Logger

	flags rootFlags
}

// NewRootCmd builds the confkeeper command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "confkeeper",
		Short: "Durable sectioned settings storage for small tools",
		Long: `Confkeeper stores settings as an INI file of [section] blocks with
key = value lines. Reads fall back to defaults and persist them back into
the file, so a fresh store heals itself into a populated one over time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.flags.interactiveSet = cmd.Flags().Changed("interactive")

			// commands that work without an opened store
			switch cmd.Name() {
			case "init", "help", "version", "completion", cobra.ShellCompRequestCmd:
				return nil
			}
			return app.open()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&app.flags.file, "file", "f", "", "store file path (env CONFKEEPER_PATH)")
	pf.StringVar(&app.flags.encoding, "encoding", "", "store file charset, IANA name (env CONFKEEPER_ENCODING)")
	pf.BoolVar(&app.flags.interactive, "interactive", false, "ask before creating a missing store file (env CONFKEEPER_INTERACTIVE)")

	rootCmd.AddCommand(
		newInitCmd(app),
		newGetCmd(app),
		newSetCmd(app),
		newListCmd(app),
		newExportCmd(app),
		newVersionCmd(app),
	)
	return rootCmd
}

// configure resolves the process configuration and diagnostics logger
// without touching the store file.
func (a *App) configure() error {
	cfg, err := config.Build(a.flags.asOverrides())
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}

	// the merge cannot see an explicit --interactive=false over
	// CONFKEEPER_INTERACTIVE=true; the command line wins when the flag was set
	if a.flags.interactiveSet {
		cfg.Interactive = a.flags.interactive
	}

	a.Config = cfg
	a.Log = logger.New("confkeeper.cli", logger.WithLevel(level))
	return nil
}

// open resolves the configuration and loads the store file.
func (a *App) open() error {
	if err := a.configure(); err != nil {
		return err
	}

	level, _ := zerolog.ParseLevel(a.Config.LogLevel)
	st, err := store.Open(a.Config.Path,
		store.WithEncoding(a.Config.Encoding),
		store.WithInteractive(a.Config.Interactive),
		store.WithLogger(logger.New("confkeeper.store", logger.WithLevel(level))),
	)
	if err != nil {
		return err
	}
	a.Store = st
	return nil
}

// Execute runs the CLI and reports failures on stderr.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
