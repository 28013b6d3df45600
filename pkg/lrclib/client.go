// Package lrclib provides an HTTP client for fetching synced lyrics from an
// LRCLIB-compatible API.
package lrclib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// ErrNotFound is returned when the API has no record for a query.
var ErrNotFound = errors.New("lyrics not found")

// Query identifies a track. TrackName and ArtistName are required.
type Query struct {
	TrackName  string
	ArtistName string
	AlbumName  string

	// DurationSec narrows the match when known; 0 omits it.
	DurationSec int
}

// Validate checks that the required fields are set.
func (q Query) Validate() error {
	if strings.TrimSpace(q.TrackName) == "" {
		return errors.New("track name is required")
	}
	if strings.TrimSpace(q.ArtistName) == "" {
		return errors.New("artist name is required")
	}
	return nil
}

// Record is a lyrics record as returned by the API.
type Record struct {
	ID           int64   `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// HasSynced returns true if the record carries timestamped lyrics.
func (r *Record) HasSynced() bool {
	return strings.TrimSpace(r.SyncedLyrics) != ""
}

// Client fetches lyrics records.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
	cache      Cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithCache enables a lookaside cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new LRCLIB client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    "https://lrclib.net",
		userAgent:  "lyricsync",
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches the record matching q. The cache, when set, is consulted
// first and filled after a successful fetch. Cache failures do not fail the
// request.
func (c *Client) Get(ctx context.Context, q Query) (*Record, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	key := CacheKey(q)
	if c.cache != nil {
		if rec, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return rec, nil
		}
	}

	rec, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, key, rec)
	}
	return rec, nil
}

func (c *Client) fetch(ctx context.Context, q Query) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("track_name", q.TrackName)
	params.Set("artist_name", q.ArtistName)
	if q.AlbumName != "" {
		params.Set("album_name", q.AlbumName)
	}
	if q.DurationSec > 0 {
		params.Set("duration", strconv.Itoa(q.DurationSec))
	}
	endpoint := c.baseURL + "/api/get?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024)) // Limit to 1MB
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s by %s: %w", q.TrackName, q.ArtistName, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lrclib returned status %d", resp.StatusCode)
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &rec, nil
}
