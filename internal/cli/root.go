// Package cli implements the workstyle commands.
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/workstyle/internal/daemon/engine"
	"github.com/watchfire-io/workstyle/internal/logger"
)

// Flags shared by the daemon and one-shot commands.
var (
	flagConfig       string
	flagLogLevel     string
	flagDeduplicate  bool
	flagPollInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "workstyle",
	Short: "Name sway/i3 workspaces after the applications they hold",
	Long: `Workstyle runs in the background and renames every workspace to its
number followed by one icon per window, e.g. "1: <firefox> <terminal>".

Icons come from a YAML file (default: $XDG_CONFIG_HOME/workstyle/config.yaml)
which is reloaded whenever it is saved.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runDaemon,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to the icon config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", os.Getenv("WORKSTYLE_LOG"), "Log level (debug, info, warn, error, none)")
	rootCmd.PersistentFlags().BoolVarP(&flagDeduplicate, "deduplicate", "d", false, "Show one icon per distinct application and title")
	rootCmd.Flags().DurationVar(&flagPollInterval, "poll-interval", engine.DefaultPollInterval, "Sleep between two event loop cycles")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger() (*logger.Logger, error) {
	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return logger.New(os.Stderr, level, ""), nil
}
