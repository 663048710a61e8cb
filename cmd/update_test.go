package cmd

import (
	"errors"
	"reflect"
	"testing"

	"hatena-md/internal/hatena"
	"hatena-md/internal/markdown"
)

func TestResolveTargetID(t *testing.T) {
	withID := &markdown.Document{FrontMatter: markdown.FrontMatter{ID: 6801883189000000}}
	withoutID := &markdown.Document{}

	tests := []struct {
		name    string
		flagID  string
		doc     *markdown.Document
		want    string
		wantErr error
	}{
		{"flag wins over front matter", "111", withID, "111", nil},
		{"flag accepts entry URL", "https://blog.hatena.ne.jp/u/b/atom/entry/222", withoutID, "222", nil},
		{"front matter id used when flag absent", "", withID, "6801883189000000", nil},
		{"neither flag nor front matter", "", withoutID, "", hatena.ErrMissingEntryID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTargetID(tt.flagID, tt.doc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTargetID failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"diary,go", []string{"diary", "go"}},
		{" diary , go ", []string{"diary", "go"}},
		{"diary,,go,", []string{"diary", "go"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := parseCategories(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseCategories(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
