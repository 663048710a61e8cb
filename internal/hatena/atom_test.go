package hatena

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestEntryIDFromTag(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"tag:blog.hatena.ne.jp,2007:entry/6801883189000000", "6801883189000000"},
		{"tag:blog.hatena.ne.jp,2013:blog-user-12345-entry-6801883189000000", "6801883189000000"},
		{"6801883189000000", "6801883189000000"},
	}

	for _, tt := range tests {
		if got := entryIDFromTag(tt.raw); got != tt.want {
			t.Errorf("entryIDFromTag(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestExtractEntryID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"6801883189000000", "6801883189000000"},
		{"https://blog.hatena.ne.jp/user/blog/atom/entry/6801883189000000", "6801883189000000"},
		{"https://user.hatenablog.com/entry/2026/01/15/6801883189000000/", "6801883189000000"},
	}

	for _, tt := range tests {
		if got := ExtractEntryID(tt.in); got != tt.want {
			t.Errorf("ExtractEntryID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseEntryID(t *testing.T) {
	id, err := ParseEntryID("6801883189000000")
	if err != nil {
		t.Fatalf("ParseEntryID failed: %v", err)
	}
	if id != 6801883189000000 {
		t.Errorf("id = %d, want 6801883189000000", id)
	}

	if _, err := ParseEntryID("abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestBuildEntryXML(t *testing.T) {
	entry := &Entry{
		Title:      "Hello & Goodbye",
		Categories: []string{"diary", "go"},
		Draft:      true,
		Content:    "![cat](cat.png)",
	}

	data, err := buildEntryXML("testuser", entry)
	if err != nil {
		t.Fatalf("buildEntryXML failed: %v", err)
	}

	payload := string(data)

	for _, want := range []string{
		"<title>Hello &amp; Goodbye</title>",
		"<name>testuser</name>",
		`<content type="text/x-markdown">![cat](cat.png)</content>`,
		`<category term="diary">`,
		`<category term="go">`,
		"<app:draft>yes</app:draft>",
		`xmlns="http://www.w3.org/2005/Atom"`,
		`xmlns:app="http://www.w3.org/2007/app"`,
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q:\n%s", want, payload)
		}
	}
}

func TestBuildEntryXMLPublished(t *testing.T) {
	data, err := buildEntryXML("testuser", &Entry{Title: "T", Draft: false})
	if err != nil {
		t.Fatalf("buildEntryXML failed: %v", err)
	}

	if !strings.Contains(string(data), "<app:draft>no</app:draft>") {
		t.Errorf("payload missing published draft flag:\n%s", data)
	}
}

const feedXML = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:app="http://www.w3.org/2007/app">
  <title>Test Blog</title>
  <entry>
    <id>tag:blog.hatena.ne.jp,2013:blog-user-12345-entry-100</id>
    <link rel="edit" href="https://blog.hatena.ne.jp/user/blog/atom/entry/100"/>
    <title>First</title>
    <published>2026-01-15T10:00:00+09:00</published>
    <updated>2026-01-16T10:00:00+09:00</updated>
    <content type="text/x-markdown">first body</content>
    <category term="diary"/>
    <app:control><app:draft>no</app:draft></app:control>
  </entry>
  <entry>
    <id>tag:blog.hatena.ne.jp,2013:blog-user-12345-entry-200</id>
    <title>Second</title>
    <updated>2026-01-17T10:00:00+09:00</updated>
    <content type="text/x-markdown">second body</content>
    <app:control><app:draft>yes</app:draft></app:control>
  </entry>
</feed>`

func TestAtomFeedUnmarshal(t *testing.T) {
	var feed atomFeed
	if err := xml.Unmarshal([]byte(feedXML), &feed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(feed.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(feed.Entries))
	}

	first := feed.Entries[0].toEntry()
	if first.ID != "100" {
		t.Errorf("first id = %q, want %q", first.ID, "100")
	}
	if first.Title != "First" {
		t.Errorf("first title = %q", first.Title)
	}
	if first.Draft {
		t.Error("first draft = true, want false")
	}
	if first.EditURL != "https://blog.hatena.ne.jp/user/blog/atom/entry/100" {
		t.Errorf("first edit url = %q", first.EditURL)
	}
	if len(first.Categories) != 1 || first.Categories[0] != "diary" {
		t.Errorf("first categories = %v", first.Categories)
	}

	second := feed.Entries[1].toEntry()
	if !second.Draft {
		t.Error("second draft = false, want true")
	}
	if second.Content != "second body" {
		t.Errorf("second content = %q", second.Content)
	}
}
