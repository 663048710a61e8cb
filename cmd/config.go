package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hatena-md/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Config shows the current configuration or runs the interactive setup
wizard. The wizard also runs automatically when credentials are missing.

Examples:
  # Show current settings (api key masked)
  hatena-md config --show

  # Run the setup wizard
  hatena-md config --wizard`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("show", false, "Show current configuration")
	configCmd.Flags().Bool("wizard", false, "Run the setup wizard")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	show, _ := cmd.Flags().GetBool("show")
	wizard, _ := cmd.Flags().GetBool("wizard")

	if show {
		fmt.Printf("Hatena ID: %s\n", cfg.Hatena.ID)
		fmt.Printf("Blog ID: %s\n", cfg.Hatena.BlogID)
		fmt.Printf("API key: %s\n", maskSecret(cfg.Hatena.APIKey))
		fmt.Printf("Output directory: %s\n", cfg.OutputDir)
		fmt.Printf("Image directory: %s\n", cfg.ImageDir)
		return nil
	}

	if wizard || cfg.Validate() != nil {
		if !wizard {
			fmt.Println("Required settings are missing. Running the setup wizard.")
		}

		path := viper.GetString("config")
		if path == "" {
			path = config.DefaultPath()
		}

		if err := cfg.RunWizard(os.Stdin, os.Stdout, path); err != nil {
			return fmt.Errorf("setup wizard failed: %w", err)
		}

		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	}

	return cmd.Help()
}

// maskSecret hides all but the presence of a credential
func maskSecret(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return strings.Repeat("*", 8)
}
