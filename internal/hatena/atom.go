package hatena

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Entry represents a blog entry on the remote platform
type Entry struct {
	ID         string
	Title      string
	Categories []string
	Draft      bool
	Content    string
	// ContentType is the type attribute of the Atom content element,
	// typically "text/x-markdown" for markdown-mode blogs.
	ContentType string
	Published   string
	Updated     string
	EditURL     string
}

// atomFeed is the wire format of an entry collection response
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

// atomEntry is the wire format of a single entry in responses
type atomEntry struct {
	XMLName    xml.Name       `xml:"entry"`
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Content    atomContent    `xml:"content"`
	Categories []atomCategory `xml:"category"`
	Links      []atomLink     `xml:"link"`
	Control    atomControl    `xml:"control"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

type atomControl struct {
	Draft string `xml:"draft"`
}

// entryRequest is the wire format of a create/update request body
type entryRequest struct {
	XMLName    xml.Name          `xml:"entry"`
	Xmlns      string            `xml:"xmlns,attr"`
	XmlnsApp   string            `xml:"xmlns:app,attr"`
	Title      string            `xml:"title"`
	Author     entryAuthor       `xml:"author"`
	Content    entryContent      `xml:"content"`
	Categories []categoryRequest `xml:"category"`
	Control    controlRequest    `xml:"app:control"`
}

type entryAuthor struct {
	Name string `xml:"name"`
}

type entryContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

type categoryRequest struct {
	Term string `xml:"term,attr"`
}

type controlRequest struct {
	Draft string `xml:"app:draft"`
}

// buildEntryXML serializes an Entry into an AtomPub request body
func buildEntryXML(author string, entry *Entry) ([]byte, error) {
	draft := "no"
	if entry.Draft {
		draft = "yes"
	}

	req := entryRequest{
		Xmlns:    "http://www.w3.org/2005/Atom",
		XmlnsApp: "http://www.w3.org/2007/app",
		Title:    entry.Title,
		Author:   entryAuthor{Name: author},
		Content:  entryContent{Type: "text/x-markdown", Body: entry.Content},
		Control:  controlRequest{Draft: draft},
	}
	for _, category := range entry.Categories {
		req.Categories = append(req.Categories, categoryRequest{Term: category})
	}

	data, err := xml.Marshal(&req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry XML: %w", err)
	}

	return append([]byte(xml.Header), data...), nil
}

// toEntry converts a parsed Atom entry into the internal Entry format
func (a *atomEntry) toEntry() *Entry {
	entry := &Entry{
		ID:          entryIDFromTag(a.ID),
		Title:       a.Title,
		Draft:       a.Control.Draft == "yes",
		Content:     a.Content.Body,
		ContentType: a.Content.Type,
		Published:   a.Published,
		Updated:     a.Updated,
	}
	for _, category := range a.Categories {
		entry.Categories = append(entry.Categories, category.Term)
	}
	for _, link := range a.Links {
		if link.Rel == "edit" {
			entry.EditURL = link.Href
			break
		}
	}
	return entry
}

// entryIDFromTag extracts the numeric entry id from an Atom id of the form
// "tag:blog.hatena.ne.jp,2013:blog-<user>-<blog>-entry-<id>" or
// "tag:blog.hatena.ne.jp,2007:entry/<id>". Unrecognized forms are
// returned unchanged.
func entryIDFromTag(raw string) string {
	if idx := strings.LastIndex(raw, "entry/"); idx >= 0 {
		return raw[idx+len("entry/"):]
	}
	if idx := strings.LastIndex(raw, "-"); idx >= 0 && strings.Contains(raw, "tag:") {
		return raw[idx+1:]
	}
	return raw
}

// ParseEntryID converts an entry id string into its numeric form
func ParseEntryID(id string) (int64, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("entry id %q is not numeric", id)
	}
	return parsed, nil
}

// ExtractEntryID accepts a bare entry id or a full entry URL and returns
// the trailing id component.
func ExtractEntryID(idOrURL string) string {
	trimmed := strings.TrimRight(idOrURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
