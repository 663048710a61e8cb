package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a new entry from a Markdown file",
	Long: `Create publishes a local Markdown file as a new entry. Local image
references are uploaded to Fotolife and rewritten to embed syntax in the
submitted body; the local file keeps its original references.

On success the assigned entry id is written back into the file's front
matter so later updates can find the entry. Any id already present in the
file is ignored.

CLI flags take precedence over front matter values.

Examples:
  hatena-md create post.md
  hatena-md create post.md --title "Hello" --categories diary,go --draft`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("title", "", "Entry title (default: from front matter)")
	createCmd.Flags().String("categories", "", "Comma-separated categories (default: from front matter)")
	createCmd.Flags().Bool("draft", false, "Save the entry as a draft")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	path := args[0]

	doc, err := loadPost(cmd, path)
	if err != nil {
		return err
	}

	entry, err := resolveImages(client, cfg, doc, path)
	if err != nil {
		return err
	}

	created, err := client.CreateEntry(entry)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	if !cfg.Quiet {
		fmt.Printf("Created entry %s\n", created.ID)
	}

	if err := persistEntryID(path, doc, created); err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Printf("Recorded entry id in %s\n", path)
	}

	return nil
}
