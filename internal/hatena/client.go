package hatena

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

const blogEndpoint = "https://blog.hatena.ne.jp"

// Client talks to the Hatena Blog AtomPub API for a single blog
type Client struct {
	hatenaID string
	blogID   string
	apiKey   string
	http     *HTTPClient

	// baseURL and fotolifeBase override the production endpoints, for tests
	baseURL      string
	fotolifeBase string
}

// NewClient creates a new Hatena Blog API client
func NewClient(hatenaID, blogID, apiKey string, httpClient *HTTPClient) (*Client, error) {
	if hatenaID == "" {
		return nil, fmt.Errorf("hatena id cannot be empty")
	}
	if blogID == "" {
		return nil, fmt.Errorf("blog id cannot be empty")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("api key cannot be empty")
	}

	logrus.WithFields(logrus.Fields{
		"hatena_id": hatenaID,
		"blog_id":   blogID,
	}).Debug("Created Hatena Blog API client")

	return &Client{
		hatenaID: hatenaID,
		blogID:   blogID,
		apiKey:   apiKey,
		http:     httpClient,
		baseURL:  blogEndpoint,
	}, nil
}

// HatenaID returns the account id the client is configured for
func (c *Client) HatenaID() string {
	return c.hatenaID
}

// atomURL builds an entry collection or member URL
func (c *Client) atomURL(parts ...string) string {
	segments := append([]string{c.baseURL, c.hatenaID, c.blogID, "atom"}, parts...)
	return strings.Join(segments, "/")
}

// authHeaders returns request headers carrying Basic auth credentials
func (c *Client) authHeaders(extra map[string]string) map[string]string {
	headers := map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(c.hatenaID+":"+c.apiKey)),
	}
	for key, value := range extra {
		headers[key] = value
	}
	return headers
}

// ListEntries fetches the entry collection, optionally keeping only drafts,
// and truncates the result to limit when limit is positive.
func (c *Client) ListEntries(draftOnly bool, limit int) ([]*Entry, error) {
	logrus.WithFields(logrus.Fields{
		"draft_only": draftOnly,
		"limit":      limit,
	}).Info("Fetching entry list")

	status, body, _, err := c.http.Do(http.MethodGet, c.atomURL("entry"), nil, c.authHeaders(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry list: %w", err)
	}
	if status != http.StatusOK {
		return nil, apiError(status, string(body))
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse entry list XML: %w", err)
	}

	var entries []*Entry
	for i := range feed.Entries {
		entry := feed.Entries[i].toEntry()
		if draftOnly && !entry.Draft {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"total_fetched": len(feed.Entries),
		"after_filter":  len(entries),
	}).Info("Successfully fetched entry list")

	return entries, nil
}

// GetEntry fetches a single entry by id
func (c *Client) GetEntry(entryID string) (*Entry, error) {
	logrus.WithField("entry_id", entryID).Debug("Fetching entry")

	status, body, _, err := c.http.Do(http.MethodGet, c.atomURL("entry", entryID), nil, c.authHeaders(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry %s: %w", entryID, err)
	}
	if status != http.StatusOK {
		return nil, apiError(status, string(body))
	}

	var parsed atomEntry
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse entry XML: %w", err)
	}

	entry := parsed.toEntry()
	entry.ID = entryID

	return entry, nil
}

// CreateEntry creates a new entry and returns it with the assigned id
func (c *Client) CreateEntry(entry *Entry) (*Entry, error) {
	logrus.WithFields(logrus.Fields{
		"title": entry.Title,
		"draft": entry.Draft,
	}).Debug("Creating entry")

	payload, err := buildEntryXML(c.hatenaID, entry)
	if err != nil {
		return nil, err
	}

	headers := c.authHeaders(map[string]string{"Content-Type": "application/xml"})
	status, body, respHeaders, err := c.http.Do(http.MethodPost, c.atomURL("entry"), payload, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	if status != http.StatusCreated {
		return nil, apiError(status, string(body))
	}

	created := *entry
	if location := respHeaders.Get("Location"); location != "" {
		created.ID = ExtractEntryID(location)
	}

	// The response body carries the full member entry; prefer its id
	// when the Location header is absent.
	if created.ID == "" {
		var parsed atomEntry
		if err := xml.Unmarshal(body, &parsed); err == nil {
			created.ID = parsed.toEntry().ID
		}
	}

	logrus.WithFields(logrus.Fields{
		"entry_id": created.ID,
		"title":    created.Title,
	}).Info("Successfully created entry")

	return &created, nil
}

// UpdateEntry replaces the remote entry identified by entryID
func (c *Client) UpdateEntry(entryID string, entry *Entry) (*Entry, error) {
	logrus.WithFields(logrus.Fields{
		"entry_id": entryID,
		"title":    entry.Title,
		"draft":    entry.Draft,
	}).Debug("Updating entry")

	payload, err := buildEntryXML(c.hatenaID, entry)
	if err != nil {
		return nil, err
	}

	headers := c.authHeaders(map[string]string{"Content-Type": "application/xml"})
	status, body, _, err := c.http.Do(http.MethodPut, c.atomURL("entry", entryID), payload, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to update entry %s: %w", entryID, err)
	}
	if status != http.StatusOK {
		return nil, apiError(status, string(body))
	}

	updated := *entry
	updated.ID = entryID

	logrus.WithFields(logrus.Fields{
		"entry_id": entryID,
		"title":    updated.Title,
	}).Info("Successfully updated entry")

	return &updated, nil
}

// PublishDraft fetches a draft entry and republishes it with the draft
// flag cleared.
func (c *Client) PublishDraft(entryID string) (*Entry, error) {
	entry, err := c.GetEntry(entryID)
	if err != nil {
		return nil, err
	}

	if !entry.Draft {
		return nil, fmt.Errorf("entry %s is already published", entryID)
	}

	entry.Draft = false
	return c.UpdateEntry(entryID, entry)
}
