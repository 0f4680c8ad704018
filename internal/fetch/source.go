// Package fetch - source.go selects a Fetcher implementation by name.
package fetch

import (
	"fmt"
	"strings"
)

// Source names a page source.
type Source string

const (
	// SourceHTTP fetches pages from the live site
	SourceHTTP Source = "http"
	// SourceFile reads pages from local snapshots
	SourceFile Source = "file"
	// SourceBrowser renders pages in a headless browser
	SourceBrowser Source = "browser"
)

// Sources lists every supported source.
func Sources() []Source {
	return []Source{SourceHTTP, SourceFile, SourceBrowser}
}

// ParseSource resolves a source name. Empty input means SourceHTTP.
func ParseSource(name string) (Source, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SourceHTTP, nil
	}
	for _, s := range Sources() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown page source %q (want one of http, file, browser)", name)
}

// SourceConfig holds everything needed to build any Fetcher.
type SourceConfig struct {
	Source   Source
	Options  *Options
	PagesDir string
}

// New builds the Fetcher for cfg.Source.
func New(cfg SourceConfig) (Fetcher, error) {
	opts := cfg.Options
	if opts == nil {
		opts = DefaultOptions()
	}

	switch cfg.Source {
	case SourceHTTP, "":
		return NewHTTPFetcher(opts), nil
	case SourceFile:
		return NewFileFetcher(cfg.PagesDir, opts.BaseURL), nil
	case SourceBrowser:
		// A render needs longer than a plain GET; Options.Timeout only raises the floor.
		return NewBrowserFetcher(opts.BaseURL, max(opts.Timeout, DefaultBrowserTimeout), ""), nil
	default:
		return nil, fmt.Errorf("unknown page source %q", cfg.Source)
	}
}
