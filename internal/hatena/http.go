package hatena

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPClient provides a configurable HTTP client shared by the blog and
// Fotolife endpoints.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// HTTPConfig holds configuration for the HTTP client
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// NewHTTPClient creates a new HTTP client with the specified configuration
func NewHTTPClient(config HTTPConfig) *HTTPClient {
	client := &http.Client{
		Timeout: config.Timeout,
	}

	logrus.WithFields(logrus.Fields{
		"timeout":    config.Timeout,
		"user_agent": config.UserAgent,
	}).Debug("Created HTTP client")

	return &HTTPClient{
		client:    client,
		userAgent: config.UserAgent,
	}
}

// Do performs an HTTP request with the given method, body and extra headers,
// returning the response status, body and headers. The response body is
// fully read and closed before returning.
func (h *HTTPClient) Do(method, url string, body []byte, headers map[string]string) (int, []byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
	}).Debug("Performing HTTP request")

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, resp.Header, fmt.Errorf("failed to read response body: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
		"status": resp.StatusCode,
		"bytes":  len(respBody),
	}).Debug("HTTP request completed")

	return resp.StatusCode, respBody, resp.Header, nil
}
