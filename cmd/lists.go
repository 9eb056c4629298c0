package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teemow/todopush/internal/google"
	"github.com/teemow/todopush/internal/tasks"
)

func newListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show the available Google Tasks lists",
		Long: `List the Google Tasks task lists of the authenticated account. Use a
list's ID as the tasks.list config value or the --list flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			auth, err := google.NewOAuth(cfg.Tasks.CredentialsFile, cfg.Tasks.TokenFile)
			if err != nil {
				return err
			}
			client, err := tasks.NewClient(ctx, auth)
			if err != nil {
				return err
			}

			lists, err := client.ListTaskLists(ctx)
			if err != nil {
				return err
			}

			rows := pterm.TableData{{"ID", "Title"}}
			for _, l := range lists {
				rows = append(rows, []string{l.ID, l.Title})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}

	return cmd
}
