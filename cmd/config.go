package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/todopush/internal/config"
	"github.com/teemow/todopush/internal/logging"
)

// loadConfig assembles the layered configuration for a command run.
// Only flags the user actually set are passed down, so flag defaults
// never shadow file or environment values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := make(map[string]any)

	if v, _ := cmd.Flags().GetString("service"); cmd.Flags().Changed("service") {
		flags["service"] = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); cmd.Flags().Changed("log-level") {
		flags["log_level"] = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); cmd.Flags().Changed("log-format") {
		flags["log_format"] = v
	}
	if cmd.Flags().Changed("no-notify") {
		flags["notify"] = false
	}
	if v, _ := cmd.Flags().GetString("keyword"); cmd.Flags().Changed("keyword") {
		flags["keyword"] = v
	}
	if v, _ := cmd.Flags().GetString("list"); cmd.Flags().Changed("list") {
		flags["tasks.list"] = v
	}

	path, _ := cmd.Flags().GetString("config")
	explicit := cmd.Flags().Changed("config")
	if path == "" {
		path = config.DefaultPath()
	}

	return config.Load(path, explicit, flags)
}

// newLogger builds the process logger from the loaded configuration.
// Logs go to stderr so serve mode keeps stdout for event responses.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.Setup(os.Stderr, cfg.Level(), cfg.LogFormat)
}
