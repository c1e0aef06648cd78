package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shodan/internal/config"
)

// ErrNotFound is returned when OMDb answers with Response "False".
var ErrNotFound = errors.New("omdb: title not found")

// ErrUnauthorized is returned when OMDb rejects the API key.
var ErrUnauthorized = errors.New("omdb: api key rejected")

// Movie carries the OMDb fields the engine consumes. OMDb reports missing
// values as "N/A".
type Movie struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Released string `json:"Released"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Writer   string `json:"Writer"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
	Language string `json:"Language"`
	Country  string `json:"Country"`
	Awards   string `json:"Awards"`
	Type     string `json:"Type"`
	IMDbID   string `json:"imdbID"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Fetcher is the lookup surface the CLI depends on. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (*Movie, error)
}

// Client provides access to the OMDb title endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig builds a client from the [omdb] config section.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("omdb: config required")
	}
	base := []Option{WithTimeout(time.Duration(cfg.OMDb.TimeoutSeconds) * time.Second)}
	return New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL, append(base, opts...)...)
}

// Fetch looks up a single title.
func (c *Client) Fetch(ctx context.Context, title string) (*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	params := url.Values{}
	params.Set("t", title)
	params.Set("apikey", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w (latency=%v)", ErrUnauthorized, latency)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var movie Movie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}
	if !strings.EqualFold(movie.Response, "True") {
		message := strings.TrimSpace(movie.Error)
		if message == "" {
			message = "no error text"
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, message)
	}
	return &movie, nil
}
