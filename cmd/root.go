package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hatena-md/internal/config"
	"hatena-md/internal/hatena"
)

var rootCmd = &cobra.Command{
	Use:   "hatena-md",
	Short: "Manage Hatena Blog entries as local Markdown files",
	Long: `hatena-md manages blog entries on Hatena Blog via the AtomPub API,
using local Markdown files with YAML front matter as the source of truth.

Posts live in Markdown files whose front matter carries the title,
categories, draft state and (once published) the remote entry id:

  ---
  title: Hello
  categories:
      - diary
  draft: true
  ---

  ![cat](cat.png)

Local image references are uploaded to Hatena Fotolife automatically on
create/update and rewritten to [f:id:...] embed syntax before the entry
is sent. Each image is uploaded at most once per content hash.

Examples:
  # One-time setup
  hatena-md config --wizard

  # List entries, drafts only, as JSON
  hatena-md list --draft --format json

  # Download one entry / all entries
  hatena-md get 6801883189000000 --output post.md
  hatena-md getall --limit 20

  # Publish a local file (the assigned id is written back to it)
  hatena-md create post.md --categories diary,go

  # Update it later (id comes from the front matter)
  hatena-md update post.md

Configuration:
  Credentials live in ~/.config/hatena-md/config.yaml:

  hatena:
    id: "your-hatena-id"
    blog_id: "your-blog.hatenablog.com"
    api_key: "your-api-key"`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Configuration file path (default: ~/.config/hatena-md/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress summary output (errors/warnings still shown)")

	// Bind global flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads configuration and initializes logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.SetupLogging()
	return cfg, nil
}

// newClient loads validated configuration and builds an API client from it
func newClient() (*hatena.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	httpClient := hatena.NewHTTPClient(hatena.HTTPConfig{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
	})

	client, err := hatena.NewClient(cfg.Hatena.ID, cfg.Hatena.BlogID, cfg.Hatena.APIKey, httpClient)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return client, cfg, nil
}
