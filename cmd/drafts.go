package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hatena-md/internal/hatena"
	"hatena-md/internal/render"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage draft entries",
	Long: `Drafts lists unpublished entries and publishes them.

Examples:
  hatena-md drafts list
  hatena-md drafts publish 6801883189000000`,
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List draft entries",
	Args:  cobra.NoArgs,
	RunE:  runDraftsList,
}

var draftsPublishCmd = &cobra.Command{
	Use:   "publish <entry_id>",
	Short: "Publish a draft entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftsPublish,
}

func init() {
	rootCmd.AddCommand(draftsCmd)
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsPublishCmd)

	draftsListCmd.Flags().String("format", "text", "Output format: text, json or csv")
	draftsPublishCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runDraftsList(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")

	entries, err := client.ListEntries(true, 0)
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}

	output, err := render.FormatEntries(entries, format)
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}

func runDraftsPublish(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	entryID := hatena.ExtractEntryID(args[0])

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		if !confirm(fmt.Sprintf("Publish entry %s?", entryID)) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	entry, err := client.PublishDraft(entryID)
	if err != nil {
		return fmt.Errorf("failed to publish entry %s: %w", entryID, err)
	}

	if !cfg.Quiet {
		fmt.Printf("Published entry %s: %s\n", entry.ID, entry.Title)
	}

	return nil
}

// confirm asks the user a yes/no question on stdin
func confirm(message string) bool {
	fmt.Printf("%s [y/N]: ", message)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
