package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hatena-md/internal/markdown"
	"hatena-md/internal/stats"
)

var getallCmd = &cobra.Command{
	Use:   "getall",
	Short: "Download all entries as Markdown files",
	Long: `Getall lists entries and downloads each one into the configured
output directory, organized into YYYYMMDD folders by publication date.

A failed entry is logged and counted but does not stop the run; the
command exits non-zero if any entry failed.

Examples:
  hatena-md getall
  hatena-md getall --limit 20
  hatena-md getall --draft`,
	Args: cobra.NoArgs,
	RunE: runGetall,
}

func init() {
	rootCmd.AddCommand(getallCmd)

	getallCmd.Flags().Int("limit", 0, "Maximum number of entries to download (0 = no limit)")
	getallCmd.Flags().Bool("draft", false, "Download draft entries only")
}

func runGetall(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	draftOnly, _ := cmd.Flags().GetBool("draft")

	entries, err := client.ListEntries(draftOnly, limit)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	tracker := stats.NewSyncStats(len(entries))

	for _, summary := range entries {
		// Fetch each member entry for its authoritative body
		entry, err := client.GetEntry(summary.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"entry_id": summary.ID,
				"error":    err,
			}).Warn("Failed to fetch entry, skipping")
			tracker.RecordFailed()
			continue
		}

		path := markdown.OutputPath(cfg.OutputDir, entry.ID, entry.Title, entry.Published)
		if err := markdown.WriteFile(path, markdown.FromEntry(entry)); err != nil {
			logrus.WithFields(logrus.Fields{
				"entry_id": entry.ID,
				"path":     path,
				"error":    err,
			}).Warn("Failed to write entry, skipping")
			tracker.RecordFailed()
			continue
		}

		tracker.RecordWritten()
	}

	tracker.Finish()

	if !cfg.Quiet {
		fmt.Println(tracker.Summary())
	}

	if tracker.Failed > 0 {
		return fmt.Errorf("%d of %d entries failed to download", tracker.Failed, tracker.Total)
	}

	return nil
}
