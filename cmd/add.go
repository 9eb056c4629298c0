package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/todopush/internal/todo"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Add a todo to the configured backend",
		Long: `Add a single todo. All arguments are joined into one title, cleaned up
and forwarded to Google Keep or Google Tasks depending on the configured
service.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateCredentials(); err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx := context.Background()
			service, err := newTodoService(ctx, cfg, logger)
			if err != nil {
				return err
			}

			receipt, err := service.Add(ctx, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("%s", todo.Message(err))
			}

			fmt.Printf("Added %q to %s\n", receipt.Title, receipt.Service)
			return nil
		},
	}

	cmd.Flags().String("list", "", "Google Tasks list ID (tasks service only)")
	return cmd
}
