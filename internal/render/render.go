package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hatena-md/internal/hatena"
)

// entrySummary is the JSON shape of a listed entry
type entrySummary struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Updated    string   `json:"updated"`
	Draft      bool     `json:"draft"`
	Categories []string `json:"categories"`
}

// FormatEntries renders an entry list in the requested format: "text",
// "json" or "csv".
func FormatEntries(entries []*hatena.Entry, format string) (string, error) {
	if len(entries) == 0 {
		return "No entries found.", nil
	}

	switch format {
	case "json":
		return formatJSON(entries)
	case "csv":
		return formatCSV(entries)
	case "text", "":
		return formatText(entries), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func formatJSON(entries []*hatena.Entry) (string, error) {
	summaries := make([]entrySummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, entrySummary{
			ID:         entry.ID,
			Title:      entry.Title,
			Updated:    entry.Updated,
			Draft:      entry.Draft,
			Categories: entry.Categories,
		})
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal entries: %w", err)
	}
	return string(data), nil
}

func formatCSV(entries []*hatena.Entry) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"id", "title", "updated", "draft", "categories"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range entries {
		draft := "no"
		if entry.Draft {
			draft = "yes"
		}
		record := []string{
			entry.ID,
			entry.Title,
			entry.Updated,
			draft,
			strings.Join(entry.Categories, ","),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return buf.String(), nil
}

func formatText(entries []*hatena.Entry) string {
	var lines []string
	for _, entry := range entries {
		marker := ""
		if entry.Draft {
			marker = "[draft] "
		}

		categories := ""
		if len(entry.Categories) > 0 {
			categories = fmt.Sprintf(" (%s)", strings.Join(entry.Categories, ", "))
		}

		lines = append(lines, fmt.Sprintf("%s%s%s", marker, entry.Title, categories))
		lines = append(lines, fmt.Sprintf("  ID: %s", entry.ID))
		lines = append(lines, fmt.Sprintf("  Updated: %s", formatTimestamp(entry.Updated)))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// formatTimestamp renders an RFC3339 timestamp in a readable local form,
// falling back to the raw value when unparseable.
func formatTimestamp(raw string) string {
	if raw == "" {
		return ""
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return ts.Format("2006-01-02 15:04:05")
}
