package markdown

import (
	"testing"

	"hatena-md/internal/hatena"
)

func TestFromEntry(t *testing.T) {
	entry := &hatena.Entry{
		ID:         "6801883189000000",
		Title:      "Hello",
		Categories: []string{"diary", "go"},
		Draft:      true,
		Content:    "body text\n",
		Published:  "2026-01-15T10:00:00+09:00",
	}

	doc := FromEntry(entry)

	if doc.FrontMatter.Title != "Hello" {
		t.Errorf("title = %q, want %q", doc.FrontMatter.Title, "Hello")
	}
	if doc.FrontMatter.ID != 6801883189000000 {
		t.Errorf("id = %d, want 6801883189000000", doc.FrontMatter.ID)
	}
	if !doc.FrontMatter.Draft {
		t.Error("draft = false, want true")
	}
	if doc.Body != "\nbody text\n" {
		t.Errorf("body = %q, want leading blank line", doc.Body)
	}
}

func TestFromEntryNonNumericID(t *testing.T) {
	doc := FromEntry(&hatena.Entry{ID: "not-a-number", Title: "X"})
	if doc.HasID() {
		t.Errorf("id = %d, want unset for non-numeric remote id", doc.FrontMatter.ID)
	}
}

func TestToEntryDropsID(t *testing.T) {
	doc := &Document{
		FrontMatter: FrontMatter{Title: "Hello", ID: 42, Draft: true, Categories: []string{"diary"}},
		Body:        "\nbody\n",
	}

	entry := doc.ToEntry()

	if entry.ID != "" {
		t.Errorf("entry id = %q, want empty", entry.ID)
	}
	if entry.Content != "body\n" {
		t.Errorf("content = %q, want leading blank line trimmed", entry.Content)
	}
	if !entry.Draft || entry.Title != "Hello" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestRoundTripThroughEntry(t *testing.T) {
	doc, err := Parse([]byte(canonicalFile))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	entry := doc.ToEntry()
	entry.ID = "99"

	back := FromEntry(entry)
	if back.FrontMatter.Title != doc.FrontMatter.Title {
		t.Errorf("title = %q, want %q", back.FrontMatter.Title, doc.FrontMatter.Title)
	}
	if back.Body != doc.Body {
		t.Errorf("body = %q, want %q", back.Body, doc.Body)
	}
}
