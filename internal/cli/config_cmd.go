package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/workstyle/internal/config"
	"github.com/watchfire-io/workstyle/internal/icons"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the icon configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolveConfigFile(flagConfig)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in config",
	Long: `Print the built-in config. Redirect it to a file to start customizing:

  workstyle config default > ~/.config/workstyle/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stdout.Write(icons.DefaultConfig())
		return err
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	path, err := config.ResolveConfigFile(flagConfig)
	if err != nil {
		return err
	}

	if !config.FileExists(path) {
		fmt.Printf("%s %s\n", styleWarning.Render("No config file at"), path)
		fmt.Println(styleHint.Render("The built-in icons are used."))
		return nil
	}

	store, err := icons.Load(path)
	if err != nil {
		fmt.Println(styleError.Render("Invalid config."))
		return err
	}

	fmt.Printf("%s %s\n", styleSuccess.Render("Config OK:"), path)
	fmt.Printf("  %s %d\n", styleLabel.Render("Matchers:"), store.Len())
	fmt.Printf("  %s %q\n", styleLabel.Render("Fallback:"), store.Fallback())
	return nil
}
