package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the todopush application
var rootCmd = &cobra.Command{
	Use:   "todopush",
	Short: "Push a todo to Google Keep or Google Tasks",
	Long: `todopush forwards a single todo title to Google Keep or Google Tasks
and shows a desktop notification with the result.

It can run as:
  - A one-shot CLI (todopush add "Buy milk")
  - A stdio event loop for launcher frontends (todopush serve)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "todopush version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/todopush/config.toml)")
	rootCmd.PersistentFlags().String("service", "", "Backend service: keep or tasks")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().Bool("no-notify", false, "Disable desktop notifications")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
