package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate markdown documentation for all commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := doc.GenMarkdownTree(rootCmd, outputDir); err != nil {
				return fmt.Errorf("generating docs: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "docs/cli", "Output directory")
	return cmd
}
