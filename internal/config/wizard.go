package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptStep is one question of the setup wizard: a label, the current
// value shown as default, a validator, and an assignment into the config.
type promptStep struct {
	label    string
	current  func(*Config) string
	validate func(string) error
	apply    func(*Config, string)
}

func required(field string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}

func optional(string) error { return nil }

// wizardSteps returns the ordered prompt sequence of the setup wizard
func wizardSteps() []promptStep {
	return []promptStep{
		{
			label:    "Hatena ID",
			current:  func(c *Config) string { return c.Hatena.ID },
			validate: required("hatena id"),
			apply:    func(c *Config, v string) { c.Hatena.ID = v },
		},
		{
			label:    "Blog ID",
			current:  func(c *Config) string { return c.Hatena.BlogID },
			validate: required("blog id"),
			apply:    func(c *Config, v string) { c.Hatena.BlogID = v },
		},
		{
			label:    "API key",
			current:  func(c *Config) string { return c.Hatena.APIKey },
			validate: required("api key"),
			apply:    func(c *Config, v string) { c.Hatena.APIKey = v },
		},
		{
			label:    "Default output directory",
			current:  func(c *Config) string { return c.OutputDir },
			validate: optional,
			apply:    func(c *Config, v string) { c.OutputDir = v },
		},
	}
}

// RunWizard interactively collects account identity and file layout
// settings, reading answers from in and writing prompts to out, then
// persists the result to path. An empty answer keeps the current value.
func (c *Config) RunWizard(in io.Reader, out io.Writer, path string) error {
	fmt.Fprintln(out, "hatena-md setup wizard")
	fmt.Fprintln(out, "Enter your Hatena Blog AtomPub credentials.")
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)

	for _, step := range wizardSteps() {
		for {
			fmt.Fprintf(out, "%s [%s]: ", step.label, step.current(c))

			line, err := reader.ReadString('\n')
			if err != nil && err != io.EOF {
				return fmt.Errorf("failed to read input: %w", err)
			}

			answer := strings.TrimSpace(line)
			if answer == "" {
				answer = step.current(c)
			}

			if verr := step.validate(answer); verr != nil {
				fmt.Fprintf(out, "invalid value: %v\n", verr)
				if err == io.EOF {
					return fmt.Errorf("wizard aborted: %v", verr)
				}
				continue
			}

			step.apply(c, answer)
			break
		}
	}

	return c.Save(path)
}
