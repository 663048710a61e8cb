package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hatena-md/internal/hatena"
	"hatena-md/internal/markdown"
)

var getCmd = &cobra.Command{
	Use:   "get <entry_id>",
	Short: "Download an entry as a Markdown file",
	Long: `Get fetches a single entry and writes it as a Markdown file with
YAML front matter. The entry id may also be pasted as a full entry URL.

Without --output the file lands in the configured output directory under
a YYYYMMDD folder named after the entry title.

Examples:
  hatena-md get 6801883189000000
  hatena-md get 6801883189000000 --output drafts/post.md`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringP("output", "o", "", "Output file path (default: derived from title and date)")
}

func runGet(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	entryID := hatena.ExtractEntryID(args[0])

	entry, err := client.GetEntry(entryID)
	if err != nil {
		return fmt.Errorf("failed to get entry %s: %w", entryID, err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = markdown.OutputPath(cfg.OutputDir, entry.ID, entry.Title, entry.Published)
	}

	if err := markdown.WriteFile(output, markdown.FromEntry(entry)); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"entry_id": entryID,
		"path":     output,
	}).Info("Downloaded entry")

	if !cfg.Quiet {
		fmt.Printf("Saved entry %s to %s\n", entryID, output)
	}

	return nil
}
