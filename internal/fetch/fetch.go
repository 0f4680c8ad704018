// Package fetch retrieves the raw HTML of recipe search-result pages.
// Every page source (network, local snapshot, headless browser) satisfies Fetcher.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the search endpoint of the recipe site.
const DefaultBaseURL = "https://recipes.lewagon.com/"

// DefaultTimeout is the per-request timeout for network fetches.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; RecipeScraper/1.0)"

// Query parameter names understood by the search endpoint.
const (
	QueryParam = "search[query]"
	PageParam  = "search[start]"
)

// Fetcher returns the HTML of one search-result page for an ingredient.
// Pages are numbered from 1.
type Fetcher interface {
	Fetch(ctx context.Context, ingredient string, page int) (string, error)
}

// Error represents an error during page fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// SearchURL builds the search-results URL for an ingredient and page number.
func SearchURL(baseURL, ingredient string, page int) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{
			URL:     baseURL,
			Message: "invalid base URL",
			Cause:   err,
		}
	}

	q := parsed.Query()
	q.Set(QueryParam, ingredient)
	q.Set(PageParam, strconv.Itoa(page))
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

// Options configures the HTTP fetcher.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// HTTPFetcher issues one GET per page against the live site.
type HTTPFetcher struct {
	baseURL string
	client  *resty.Client
}

// NewHTTPFetcher creates a fetcher backed by a resty client.
func NewHTTPFetcher(opts *Options) *HTTPFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeaders(opts.Headers)

	return &HTTPFetcher{
		baseURL: baseURL,
		client:  client,
	}
}

// Fetch retrieves the HTML of one results page.
// Transport failures and non-2xx responses are returned as *Error and never retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, ingredient string, page int) (string, error) {
	urlStr, err := SearchURL(f.baseURL, ingredient, page)
	if err != nil {
		return "", err
	}

	resp, err := f.client.R().SetContext(ctx).Get(urlStr)
	if err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}

	if !resp.IsSuccess() {
		return "", &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode()),
			StatusCode: resp.StatusCode(),
		}
	}

	return resp.String(), nil
}
