// Package bgg is a small client for the BoardGameGeek XML API.
package bgg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"bgg-probe/xmltree"
)

const (
	// DefaultBaseURL is the legacy XML API root
	DefaultBaseURL = "https://www.boardgamegeek.com/xmlapi"

	// DefaultTimeout bounds each request
	DefaultTimeout = 10 * time.Second

	// SearchType is the item type filter sent with every search
	SearchType = "boardgame"
)

var (
	// ErrNoGames means the search response held no item element.
	ErrNoGames = errors.New("no games found")

	// ErrNoName means the first item has no name child.
	ErrNoName = errors.New("game name not found")

	// ErrNoBoardgame means the detail response held no boardgame element.
	ErrNoBoardgame = errors.New("boardgame element not found")
)

// StatusError reports a non-200 response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Code)
}

// ResponseHook observes every response before its status is checked.
// contentLength counts characters, not bytes.
type ResponseHook func(url string, status int, contentLength int)

// Client represents the BGG XML API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	onResponse ResponseHook
}

// Config holds the configuration for the API client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	OnResponse ResponseHook
}

// NewClient creates a client with default settings
func NewClient() *Client {
	return NewClientWithConfig(Config{})
}

// NewClientWithConfig creates a new client with custom configuration
func NewClientWithConfig(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    config.BaseURL,
		onResponse: config.OnResponse,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// SearchURL returns the URL Search requests for query.
func (c *Client) SearchURL(query string) string {
	params := url.Values{}
	params.Set("search", query)
	params.Set("type", SearchType)
	return c.baseURL + "/search?" + params.Encode()
}

// DetailURL returns the URL FetchDetail requests for gameID.
func (c *Client) DetailURL(gameID string) string {
	return c.baseURL + "/boardgame/" + url.PathEscape(gameID)
}

// Search returns the first item of a boardgame search. When the item has no
// name the partial result is returned together with ErrNoName.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	body, err := c.get(ctx, c.SearchURL(query))
	if err != nil {
		return nil, err
	}

	root, err := xmltree.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	return parseSearch(root)
}

// FetchDetail loads the boardgame record for gameID.
func (c *Client) FetchDetail(ctx context.Context, gameID string) (*GameDetail, error) {
	body, err := c.get(ctx, c.DetailURL(gameID))
	if err != nil {
		return nil, err
	}

	root, err := xmltree.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail response: %w", err)
	}
	return parseDetail(root)
}

// get performs a GET request and returns the body of a 200 response
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.onResponse != nil {
		c.onResponse(rawURL, resp.StatusCode, utf8.RuneCount(body))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, URL: rawURL}
	}
	return body, nil
}
