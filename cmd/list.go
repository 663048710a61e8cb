package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hatena-md/internal/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List blog entries",
	Long: `List fetches the entry collection from the blog and renders it.

Examples:
  # List recent entries
  hatena-md list

  # Drafts only, limited to 10
  hatena-md list --draft --limit 10

  # Machine-readable output
  hatena-md list --format json
  hatena-md list --format csv`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("draft", false, "Show draft entries only")
	listCmd.Flags().Int("limit", 0, "Maximum number of entries to list (0 = no limit)")
	listCmd.Flags().String("format", "text", "Output format: text, json or csv")
}

func runList(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	draftOnly, _ := cmd.Flags().GetBool("draft")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	entries, err := client.ListEntries(draftOnly, limit)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	output, err := render.FormatEntries(entries, format)
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}
