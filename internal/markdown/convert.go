package markdown

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"hatena-md/internal/hatena"
)

// FromEntry converts a remote entry into a local document. The body gets
// a leading blank line so the serialized file is separated from the front
// matter block.
func FromEntry(entry *hatena.Entry) *Document {
	var id int64
	if entry.ID != "" {
		parsed, err := strconv.ParseInt(entry.ID, 10, 64)
		if err != nil {
			logrus.WithField("entry_id", entry.ID).Warn("Entry id is not numeric, omitting it from front matter")
		} else {
			id = parsed
		}
	}

	body := entry.Content
	if !strings.HasPrefix(body, "\n") {
		body = "\n" + body
	}

	return &Document{
		FrontMatter: FrontMatter{
			Title:      entry.Title,
			Categories: entry.Categories,
			Draft:      entry.Draft,
			ID:         id,
		},
		Body: body,
	}
}

// ToEntry converts a local document into an entry for create/update calls.
// The id is intentionally not carried over; the caller decides the target.
func (d *Document) ToEntry() *hatena.Entry {
	return &hatena.Entry{
		Title:      d.FrontMatter.Title,
		Categories: d.FrontMatter.Categories,
		Draft:      d.FrontMatter.Draft,
		Content:    strings.TrimPrefix(d.Body, "\n"),
	}
}
