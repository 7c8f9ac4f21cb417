package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// DefaultAPIURL is the public demo API the original dataset comes from
const DefaultAPIURL = "https://jsonplaceholder.typicode.com"

// maxResponseSize caps a single API response (the full /posts payload is ~27KB)
const maxResponseSize = 10 * 1024 * 1024

type httpFetcher struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	baseURL string
}

// FetcherConfig tunes the HTTP fetcher
type FetcherConfig struct {
	BaseURL string
	// RetryMax is the number of retries for connection errors and 5xx responses
	RetryMax int
	// RequestsPerSecond throttles outbound requests to the demo API
	RequestsPerSecond float64
	Timeout           time.Duration
}

// NewHTTPFetcher creates a Fetcher that talks to a JSONPlaceholder-compatible API
func NewHTTPFetcher(cfg FetcherConfig) Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = log.New(log.Writer(), "[SEED-FETCH] ", log.LstdFlags)

	return &httpFetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// FetchUsers downloads all demo users
func (f *httpFetcher) FetchUsers(ctx context.Context) ([]APIUser, error) {
	var out []APIUser
	if err := f.getJSON(ctx, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchPosts downloads all demo posts
func (f *httpFetcher) FetchPosts(ctx context.Context) ([]APIPost, error) {
	var out []APIPost
	if err := f.getJSON(ctx, "/posts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *httpFetcher) getJSON(ctx context.Context, path string, dst interface{}) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	url := f.baseURL + path
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("WARN: failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: url, StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}
