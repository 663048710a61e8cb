package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hatena-md/internal/config"
	"hatena-md/internal/hatena"
	"hatena-md/internal/images"
	"hatena-md/internal/markdown"
)

// parseCategories splits a comma-separated category list, dropping blanks
func parseCategories(raw string) []string {
	var categories []string
	for _, category := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(category); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	return categories
}

// loadPost parses the local post file and overlays CLI-supplied title,
// categories and draft flag onto its front matter. Flags win over the file.
func loadPost(cmd *cobra.Command, path string) (*markdown.Document, error) {
	doc, err := markdown.ParseFile(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		doc.FrontMatter.Title = title
	}
	if cmd.Flags().Changed("categories") {
		raw, _ := cmd.Flags().GetString("categories")
		doc.FrontMatter.Categories = parseCategories(raw)
	}
	if cmd.Flags().Changed("draft") {
		draft, _ := cmd.Flags().GetBool("draft")
		doc.FrontMatter.Draft = draft
	}

	if doc.FrontMatter.Title == "" {
		doc.FrontMatter.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return doc, nil
}

// resolveImages uploads local images referenced by the post body and
// returns the entry to send, with references rewritten to embed syntax.
// The file on disk keeps its original references.
func resolveImages(client *hatena.Client, cfg *config.Config, doc *markdown.Document, path string) (*hatena.Entry, error) {
	cache := images.NewCache(cfg.Cache.FilePath)
	if err := cache.Load(); err != nil {
		return nil, err
	}

	resolver := images.NewResolver(client, cache, cfg.ImageDir)

	rewritten, err := resolver.Rewrite(doc.Body, filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	if err := cache.Save(); err != nil {
		logrus.WithError(err).Warn("Failed to persist upload cache")
	}

	entry := doc.ToEntry()
	entry.Content = strings.TrimPrefix(rewritten, "\n")
	return entry, nil
}

// persistEntryID writes the assigned remote id back into the local file's
// front matter.
func persistEntryID(path string, doc *markdown.Document, entry *hatena.Entry) error {
	id, err := hatena.ParseEntryID(entry.ID)
	if err != nil {
		return fmt.Errorf("cannot record entry id in %s: %w", path, err)
	}

	doc.FrontMatter.ID = id
	if err := markdown.WriteFile(path, doc); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"entry_id": entry.ID,
		"path":     path,
	}).Info("Recorded entry id in front matter")

	return nil
}
