package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrNotConfigured indicates required API credentials are missing.
// Commands that need credentials refuse to run until the wizard has been
// completed.
var ErrNotConfigured = errors.New("not configured (run 'hatena-md config --wizard')")

// Config holds all configuration for the application
type Config struct {
	// Hatena account and blog identity
	Hatena struct {
		ID     string `mapstructure:"id"`
		BlogID string `mapstructure:"blog_id"`
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"hatena"`

	// Local file layout
	OutputDir string `mapstructure:"output_dir"`
	ImageDir  string `mapstructure:"image_dir"`

	// Upload cache settings
	Cache struct {
		FilePath string `mapstructure:"file_path"`
	} `mapstructure:"cache"`

	// HTTP client settings
	HTTP struct {
		Timeout   time.Duration `mapstructure:"timeout"`
		UserAgent string        `mapstructure:"user_agent"`
	} `mapstructure:"http"`

	// Logging settings
	Verbose bool `mapstructure:"verbose"`
	Debug   bool `mapstructure:"debug"`
	Quiet   bool `mapstructure:"quiet"`
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "hatena-md.yaml")
	}
	return filepath.Join(home, ".config", "hatena-md", "config.yaml")
}

// defaultCachePath returns the default upload cache location, next to the
// config file.
func defaultCachePath() string {
	return filepath.Join(filepath.Dir(DefaultPath()), "uploads.gob")
}

// Load loads configuration from file and merges with command-line flags
func Load(configFile string) (*Config, error) {
	// Set defaults
	viper.SetDefault("output_dir", "posts")
	viper.SetDefault("image_dir", "img")
	viper.SetDefault("cache.file_path", defaultCachePath())
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "hatena-md/1.0")

	// Set config file
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(filepath.Dir(DefaultPath()))
		viper.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Debug("No config file found, using defaults and command-line flags")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Bind environment variables with prefix
	viper.SetEnvPrefix("HATENA_MD")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// Validate checks that required credentials are present
func (c *Config) Validate() error {
	if c.Hatena.ID == "" {
		return fmt.Errorf("%w: hatena id is missing", ErrNotConfigured)
	}
	if c.Hatena.BlogID == "" {
		return fmt.Errorf("%w: blog id is missing", ErrNotConfigured)
	}
	if c.Hatena.APIKey == "" {
		return fmt.Errorf("%w: api key is missing", ErrNotConfigured)
	}
	return nil
}

// fileConfig is the on-disk YAML shape written by Save. Logging and flag
// settings are deliberately not persisted.
type fileConfig struct {
	Hatena struct {
		ID     string `yaml:"id"`
		BlogID string `yaml:"blog_id"`
		APIKey string `yaml:"api_key"`
	} `yaml:"hatena"`
	OutputDir string `yaml:"output_dir"`
	ImageDir  string `yaml:"image_dir"`
}

// Save persists account identity and file layout settings to path with
// user-only permissions, creating parent directories as needed.
func (c *Config) Save(path string) error {
	var out fileConfig
	out.Hatena.ID = c.Hatena.ID
	out.Hatena.BlogID = c.Hatena.BlogID
	out.Hatena.APIKey = c.Hatena.APIKey
	out.OutputDir = c.OutputDir
	out.ImageDir = c.ImageDir

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logrus.WithField("path", path).Info("Saved configuration")
	return nil
}

// SetupLogging configures logrus based on the logging settings
func (c *Config) SetupLogging() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if c.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else if c.Verbose {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}
