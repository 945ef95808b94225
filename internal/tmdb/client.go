package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultImageBaseURL is the public image CDN root.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	maxErrorBody = 4 << 10
)

var (
	// ErrNotFound is returned when TMDB answers 404.
	ErrNotFound = errors.New("tmdb: resource not found")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("tmdb: service temporarily unavailable")
)

// StatusError is a non-2xx, non-404 answer from TMDB.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tmdb returned %d", e.StatusCode)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker[[]byte]
	discover     DiscoverDefaults
	logger       *slog.Logger
}

// DiscoverDefaults tunes the year-filtered top rated list.
type DiscoverDefaults struct {
	MinVoteCount int
	MinRating    float64
	// StrictDateFilter filters on release_date within the calendar year
	// instead of primary_release_year.
	StrictDateFilter bool
}

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

// WithImageBaseURL overrides the image CDN root used by ImageURL.
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.imageBaseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithRateLimit sets the outbound request rate.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithDiscoverDefaults sets the vote thresholds for year-filtered lists.
func WithDiscoverDefaults(d DiscoverDefaults) Option {
	return func(c *Client) {
		c.discover = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: DefaultImageBaseURL,
		language:     strings.TrimSpace(language),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(20), 10),
		discover:     DiscoverDefaults{MinVoteCount: 100, MinRating: 6.0},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = c.newBreaker()
	return c, nil
}

func (c *Client) newBreaker() *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "tmdb-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		// Opens at a 60% failure rate over at least 10 requests.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Missing resources and caller cancellations say nothing about
		// upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// get performs a GET against path with params and decodes the JSON body into
// out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" && params.Get("language") == "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("tmdb rate limit: %w", err)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, path, endpoint.String())
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrUnavailable
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("tmdb request", "path", path, "status", resp.StatusCode, "latency", latency)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tmdb response: %w", err)
	}
	return body, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload errorResponse
	_ = json.Unmarshal(raw, &payload)
	return &StatusError{StatusCode: resp.StatusCode, Message: payload.StatusMessage}
}

// ImageURL builds the CDN URL for a poster or backdrop path. Empty paths
// yield an empty string. Size defaults to w500.
func (c *Client) ImageURL(path, size string) string {
	return ImageURL(c.imageBaseURL, path, size)
}

// ImageURL builds {base}/{size}{path}.
func ImageURL(base, path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + "/" + size + path
}
