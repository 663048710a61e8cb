package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func configuredConfig() *Config {
	var cfg Config
	cfg.Hatena.ID = "alice"
	cfg.Hatena.BlogID = "alice.hatenablog.com"
	cfg.Hatena.APIKey = "secret"
	cfg.OutputDir = "posts"
	cfg.ImageDir = "img"
	return &cfg
}

func TestValidate(t *testing.T) {
	if err := configuredConfig().Validate(); err != nil {
		t.Fatalf("Validate failed on complete config: %v", err)
	}

	tests := []struct {
		name  string
		unset func(*Config)
	}{
		{"missing hatena id", func(c *Config) { c.Hatena.ID = "" }},
		{"missing blog id", func(c *Config) { c.Hatena.BlogID = "" }},
		{"missing api key", func(c *Config) { c.Hatena.APIKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := configuredConfig()
			tt.unset(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrNotConfigured) {
				t.Fatalf("expected ErrNotConfigured, got %v", err)
			}
		})
	}
}

func TestSaveWritesUserOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := configuredConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("permissions = %o, want 0600", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	for _, want := range []string{"id: alice", "blog_id: alice.hatenablog.com", "api_key: secret", "output_dir: posts"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config file missing %q:\n%s", want, data)
		}
	}
}

func TestRunWizard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var cfg Config
	cfg.OutputDir = "posts"

	input := strings.NewReader("alice\nalice.hatenablog.com\nsecret\n\n")
	var output strings.Builder

	if err := cfg.RunWizard(input, &output, path); err != nil {
		t.Fatalf("RunWizard failed: %v", err)
	}

	if cfg.Hatena.ID != "alice" {
		t.Errorf("hatena id = %q", cfg.Hatena.ID)
	}
	if cfg.Hatena.BlogID != "alice.hatenablog.com" {
		t.Errorf("blog id = %q", cfg.Hatena.BlogID)
	}
	if cfg.Hatena.APIKey != "secret" {
		t.Errorf("api key = %q", cfg.Hatena.APIKey)
	}
	// Empty answer keeps the current value
	if cfg.OutputDir != "posts" {
		t.Errorf("output dir = %q, want kept default", cfg.OutputDir)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not persisted: %v", err)
	}

	prompts := output.String()
	for _, want := range []string{"Hatena ID", "Blog ID", "API key", "Default output directory"} {
		if !strings.Contains(prompts, want) {
			t.Errorf("wizard output missing prompt %q", want)
		}
	}
}

func TestRunWizardRepromptsOnEmptyRequired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var cfg Config
	input := strings.NewReader("\nalice\nalice.hatenablog.com\nsecret\nout\n")
	var output strings.Builder

	if err := cfg.RunWizard(input, &output, path); err != nil {
		t.Fatalf("RunWizard failed: %v", err)
	}

	if cfg.Hatena.ID != "alice" {
		t.Errorf("hatena id = %q, want value from reprompt", cfg.Hatena.ID)
	}
	if !strings.Contains(output.String(), "invalid value") {
		t.Error("wizard output missing validation message")
	}
}

func TestRunWizardAbortsOnEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var cfg Config
	input := strings.NewReader("")
	var output strings.Builder

	if err := cfg.RunWizard(input, &output, path); err == nil {
		t.Fatal("expected error when input ends before required answers")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should not be written on abort")
	}
}
