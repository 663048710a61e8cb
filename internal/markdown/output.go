package markdown

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[-\s]+`)
)

// slugify converts an entry title to a filesystem-safe file name stem
func slugify(title string) string {
	slug := slugStripPattern.ReplaceAllString(title, "")
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// OutputPath derives the local file path for a downloaded entry: a YYYYMMDD
// folder under outputDir taken from the published timestamp when parseable,
// and a slugified title (falling back to the entry id) as file name.
func OutputPath(outputDir, entryID, title, published string) string {
	dir := outputDir
	if published != "" {
		if ts, err := time.Parse(time.RFC3339, published); err == nil {
			dir = filepath.Join(outputDir, ts.Format("20060102"))
		}
	}

	name := slugify(title)
	if name == "" {
		name = entryID
	}
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}

	return filepath.Join(dir, name)
}
