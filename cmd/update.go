package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hatena-md/internal/hatena"
	"hatena-md/internal/markdown"
)

var updateCmd = &cobra.Command{
	Use:   "update <path>",
	Short: "Update an existing entry from a Markdown file",
	Long: `Update republishes a local Markdown file over an existing entry.
The target entry id is taken from --entry-id or, when absent, from the id
field of the file's front matter. Images are handled as in create.

Examples:
  # Id from the file's front matter
  hatena-md update post.md

  # Explicit target (also accepts a full entry URL)
  hatena-md update --entry-id 6801883189000000 post.md`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("entry-id", "", "Target entry id (default: the file's front matter id)")
	updateCmd.Flags().String("title", "", "Entry title (default: from front matter)")
	updateCmd.Flags().String("categories", "", "Comma-separated categories (default: from front matter)")
	updateCmd.Flags().Bool("draft", false, "Save the entry as a draft")
}

// resolveTargetID picks the entry id to update: the flag wins, then the
// file's front matter; neither present fails before any network call.
func resolveTargetID(flagID string, doc *markdown.Document) (string, error) {
	if flagID != "" {
		return hatena.ExtractEntryID(flagID), nil
	}
	if doc.HasID() {
		return doc.EntryID(), nil
	}
	return "", hatena.ErrMissingEntryID
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	path := args[0]

	doc, err := loadPost(cmd, path)
	if err != nil {
		return err
	}

	flagID, _ := cmd.Flags().GetString("entry-id")
	entryID, err := resolveTargetID(flagID, doc)
	if err != nil {
		return err
	}

	entry, err := resolveImages(client, cfg, doc, path)
	if err != nil {
		return err
	}

	updated, err := client.UpdateEntry(entryID, entry)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entryID, err)
	}

	if !cfg.Quiet {
		fmt.Printf("Updated entry %s\n", updated.ID)
	}

	// Record the id when the file didn't carry one yet
	if !doc.HasID() {
		if err := persistEntryID(path, doc, updated); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Printf("Recorded entry id in %s\n", path)
		}
	}

	return nil
}
