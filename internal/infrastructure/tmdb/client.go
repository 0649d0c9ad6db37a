package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"MoviesETL/internal/domain"
	"MoviesETL/internal/ports"
)

const (
	topRatedPath   = "/movie/top_rated"
	movieDetailFmt = "/movie/%d"
	defaultTimeout = 10 * time.Second
)

// Client walks the top-rated listing and fetches per-movie details.
type Client struct {
	apiKey       string
	baseURL      string
	language     string
	listClient   *http.Client
	detailClient func() *http.Client
	logger       *slog.Logger
	progress     io.Writer
}

var _ ports.MovieCatalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the client used for listing pages.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.listClient = client
		}
	}
}

// WithDetailClient overrides the factory that builds one client per detail call.
func WithDetailClient(factory func() *http.Client) Option {
	return func(c *Client) {
		if factory != nil {
			c.detailClient = factory
		}
	}
}

// WithLanguage adds the language query parameter to every request.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = strings.TrimSpace(language)
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgressWriter redirects the detail progress bar; io.Discard hides it.
func WithProgressWriter(w io.Writer) Option {
	return func(c *Client) {
		if w != nil {
			c.progress = w
		}
	}
}

// New creates a catalog client. Both the API key and base URL are required.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		listClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress:   os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.detailClient == nil {
		list := c.listClient
		c.detailClient = func() *http.Client {
			return &http.Client{Timeout: list.Timeout, Transport: list.Transport}
		}
	}
	return c, nil
}

// ListTopRatedIDs collects movie IDs from pages 1..pages in server order.
// A failing page ends pagination; the IDs gathered so far are returned
// without error. Only context cancellation is reported.
func (c *Client) ListTopRatedIDs(ctx context.Context, pages int) ([]int64, error) {
	ids := make([]int64, 0)
	for page := 1; page <= pages; page++ {
		pageIDs, err := c.fetchPage(ctx, page)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ids, ctxErr
			}
			c.logger.Warn("top rated page failed, stopping pagination",
				"page", page, "collected", len(ids), "error", err)
			break
		}
		ids = append(ids, pageIDs...)
	}

	c.logger.Debug("top rated listing done", "ids", len(ids))
	return ids, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) ([]int64, error) {
	endpoint, err := c.buildURL(topRatedPath, url.Values{"page": {strconv.Itoa(page)}})
	if err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, c.listClient, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode top rated page %d: %w", page, err)
	}

	ids := make([]int64, 0, len(payload.Results))
	for _, r := range payload.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// FetchDetails retrieves one movie. Any HTTP or decode failure yields the
// empty placeholder record; only context cancellation is returned.
func (c *Client) FetchDetails(ctx context.Context, id int64) (domain.RawMovie, error) {
	endpoint, err := c.buildURL(fmt.Sprintf(movieDetailFmt, id), nil)
	if err != nil {
		return domain.RawMovie{}, err
	}

	resp, err := c.get(ctx, c.detailClient(), endpoint)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.RawMovie{}, ctxErr
		}
		c.logger.Warn("movie details failed", "id", id, "error", err)
		return domain.RawMovie{}, nil
	}
	defer resp.Body.Close()

	movie, err := decodeRawMovie(resp.Body)
	if err != nil {
		c.logger.Warn("movie details unreadable", "id", id, "error", err)
		return domain.RawMovie{}, nil
	}
	return movie, nil
}

// FetchAll fetches details sequentially. The result has one entry per id, in
// input order, with placeholders where a fetch failed.
func (c *Client) FetchAll(ctx context.Context, ids []int64) ([]domain.RawMovie, error) {
	bar := progressbar.NewOptions(len(ids),
		progressbar.OptionSetWriter(c.progress),
		progressbar.OptionSetDescription("movie details"),
		progressbar.OptionShowCount(),
	)

	movies := make([]domain.RawMovie, 0, len(ids))
	failed := 0
	for _, id := range ids {
		movie, err := c.FetchDetails(ctx, id)
		if err != nil {
			return movies, fmt.Errorf("fetch movie %d: %w", id, err)
		}
		if movie.IsEmpty() {
			failed++
		}
		movies = append(movies, movie)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	c.logger.Info("movie details fetched", "requested", len(ids), "failed", failed)
	return movies, nil
}

func (c *Client) buildURL(path string, extra url.Values) (string, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("parse tmdb url: %w", err)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	endpoint.RawQuery = params.Encode()
	return endpoint.String(), nil
}

func (c *Client) get(ctx context.Context, client *http.Client, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("tmdb returned %s (latency=%v)", resp.Status, latency)
	}
	return resp, nil
}
