package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrMalformedFrontMatter indicates the leading YAML block could not be parsed.
var ErrMalformedFrontMatter = errors.New("malformed front matter")

// FrontMatter holds the recognized metadata keys of a post file. Field
// order here is the canonical key order emitted on serialization.
// Unknown keys are dropped on round-trip.
type FrontMatter struct {
	Title      string   `yaml:"title"`
	Categories []string `yaml:"categories,omitempty"`
	Draft      bool     `yaml:"draft"`
	ID         int64    `yaml:"id,omitempty"`
}

// Document is the in-memory form of a local post file: front matter plus
// the raw Markdown body following the closing delimiter.
type Document struct {
	FrontMatter FrontMatter
	Body        string
}

// HasID reports whether the document carries a remote entry id
func (d *Document) HasID() bool {
	return d.FrontMatter.ID != 0
}

// EntryID returns the remote entry id as a string, empty when unassigned
func (d *Document) EntryID() string {
	if d.FrontMatter.ID == 0 {
		return ""
	}
	return fmt.Sprintf("%d", d.FrontMatter.ID)
}

// Parse splits a leading YAML front matter block from the body. Files
// without a front matter block parse to a zero FrontMatter and the full
// content as body.
func Parse(source []byte) (*Document, error) {
	var meta FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)
	}

	return &Document{
		FrontMatter: meta,
		Body:        string(body),
	}, nil
}

// Serialize emits the document as file contents: front matter with stable
// key order (title, categories, draft, id) between "---" delimiters,
// followed by the body. The id key is omitted while unassigned.
func Serialize(doc *Document) ([]byte, error) {
	meta, err := yaml.Marshal(&doc.FrontMatter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n")
	buf.WriteString(doc.Body)

	return buf.Bytes(), nil
}

// ParseFile reads and parses a local post file
func ParseFile(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// WriteFile serializes the document to path, creating parent directories
// as needed.
func WriteFile(path string, doc *Document) error {
	contents, err := Serialize(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(contents),
	}).Debug("Wrote post file")

	return nil
}
