// Package fetch - browser.go renders search pages in headless Chrome for client-rendered result lists.
package fetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultBrowserTimeout bounds one headless render.
const DefaultBrowserTimeout = 30 * time.Second

// BrowserFetcher renders each search page in a headless browser.
// Requires Chrome/Chromium to be installed on the system.
type BrowserFetcher struct {
	baseURL string
	timeout time.Duration
	waitFor string
}

// NewBrowserFetcher creates a browser-backed fetcher.
// waitFor is a CSS selector the renderer waits on before capturing HTML; empty means "body".
func NewBrowserFetcher(baseURL string, timeout time.Duration, waitFor string) *BrowserFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	if waitFor == "" {
		waitFor = "body"
	}
	return &BrowserFetcher{baseURL: baseURL, timeout: timeout, waitFor: waitFor}
}

// Fetch navigates to the search URL and returns the rendered outer HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, ingredient string, page int) (string, error) {
	urlStr, err := SearchURL(f.baseURL, ingredient, page)
	if err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "starting headless browser", "url", urlStr)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, f.timeout)
	defer cancel()

	var html string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady(f.waitFor),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "browser rendering failed",
			Cause:   err,
		}
	}

	slog.DebugContext(ctx, "rendered page", "url", urlStr, "bytes", len(html))

	return html, nil
}
