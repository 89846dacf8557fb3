package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultArchiveURL is the public OpenDev IRC log archive
const DefaultArchiveURL = "https://meetings.opendev.org/irclogs"

// archiveSettleTime is how long after midnight UTC a day's page may still gain
// messages the archive has not written out yet
const archiveSettleTime = time.Hour

// ArchiveClient retrieves per-day channel logs from the archive
type ArchiveClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *PageCache
	now        func() time.Time
}

// ArchiveOption configures an ArchiveClient
type ArchiveOption func(*ArchiveClient)

// WithBaseURL points the client at a different archive
func WithBaseURL(baseURL string) ArchiveOption {
	return func(c *ArchiveClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(d time.Duration) ArchiveOption {
	return func(c *ArchiveClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) ArchiveOption {
	return func(c *ArchiveClient) {
		c.httpClient = hc
	}
}

// WithPageCache stores pages of completed days in cache
func WithPageCache(cache *PageCache) ArchiveOption {
	return func(c *ArchiveClient) {
		c.cache = cache
	}
}

// WithClock overrides the clock used to decide which days are complete
func WithClock(now func() time.Time) ArchiveOption {
	return func(c *ArchiveClient) {
		c.now = now
	}
}

// NewArchiveClient creates an ArchiveClient for the public archive
func NewArchiveClient(opts ...ArchiveOption) *ArchiveClient {
	c := &ArchiveClient{
		baseURL:    DefaultArchiveURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LogURL returns the archive URL of channel's log for day
func (c *ArchiveClient) LogURL(channel string, day time.Time) string {
	escaped := url.PathEscape(channel)
	return fmt.Sprintf("%s/%s/%s.%s.log.html", c.baseURL, escaped, escaped, day.UTC().Format("2006-01-02"))
}

// FetchDay downloads the log page of channel for day.
// A missing page yields a *FetchError matching ErrDayNotArchived.
func (c *ArchiveClient) FetchDay(ctx context.Context, channel string, day time.Time) (string, error) {
	day = truncateDay(day)
	cacheable := c.cache != nil && c.dayComplete(day)

	if cacheable {
		body, ok, err := c.cache.Get(channel, day)
		if err != nil {
			LogWarn("Failed to read page cache: %v", err)
		} else if ok {
			LogDebug("Using cached log for %s on %s", channel, day.Format("2006-01-02"))
			return body, nil
		}
	}

	logURL := c.LogURL(channel, day)
	LogDebug("Fetching log from %s", logURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logURL, nil)
	if err != nil {
		return "", &FetchError{URL: logURL, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{URL: logURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &FetchError{URL: logURL, StatusCode: resp.StatusCode, Err: ErrDayNotArchived}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FetchError{URL: logURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: logURL, StatusCode: resp.StatusCode, Err: err}
	}

	if cacheable {
		if err := c.cache.Put(channel, day, string(body)); err != nil {
			LogWarn("Failed to cache log page: %v", err)
		}
	}
	return string(body), nil
}

// dayComplete reports whether the archive has finished writing day's page
func (c *ArchiveClient) dayComplete(day time.Time) bool {
	return day.Add(24*time.Hour + archiveSettleTime).Before(c.now())
}

// FetchTranscript collects every message of channel inside window, dropping
// messages from ignoreNicks. Days the archive has no log for are skipped.
func (c *ArchiveClient) FetchTranscript(ctx context.Context, channel string, window Window, ignoreNicks []string) (*Transcript, error) {
	ignored := make(map[string]struct{}, len(ignoreNicks))
	for _, nick := range ignoreNicks {
		ignored[nick] = struct{}{}
	}

	LogDebug("Getting messages for %s since %s", channel, window.Start.Format(time.RFC3339))
	transcript := NewTranscript(channel, window)
	for _, day := range window.Days() {
		page, err := c.FetchDay(ctx, channel, day)
		if errors.Is(err, ErrDayNotArchived) {
			LogDebug("No log archived for %s on %s", channel, day.Format("2006-01-02"))
			continue
		}
		if err != nil {
			return nil, err
		}

		messages, err := ParseLog(strings.NewReader(page))
		if err != nil {
			return nil, &ParseError{Source: "archive", Key: c.LogURL(channel, day), Err: err}
		}
		for _, msg := range messages {
			if !window.Includes(msg.Timestamp) {
				continue
			}
			if _, skip := ignored[msg.Nickname]; skip {
				continue
			}
			transcript.Add(msg)
		}
	}

	if len(transcript.Messages) == 0 {
		return nil, fmt.Errorf("%s: %w", channel, ErrEmptyLog)
	}
	LogDebugFields("Collected messages", map[string]interface{}{
		"channel":   channel,
		"messages":  len(transcript.Messages),
		"nicknames": len(transcript.Nicknames()),
	})
	return transcript, nil
}
