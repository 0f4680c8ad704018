// Package fetch - file.go serves pages from local HTML snapshots for offline runs.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/recipe-scraper/internal/output"
)

// DefaultPagesDir is where offline snapshots are looked up.
const DefaultPagesDir = "pages"

// MissingLocalFileError is returned when the first-page snapshot for an ingredient is absent.
type MissingLocalFileError struct {
	Path string
	URL  string
}

func (e *MissingLocalFileError) Error() string {
	return fmt.Sprintf("local snapshot not found: %s", e.Path)
}

// Remediation returns a POSIX shell command that downloads the missing snapshot.
func (e *MissingLocalFileError) Remediation() string {
	return fmt.Sprintf("curl -s %s > %s", shellQuote(e.URL), shellQuote(e.Path))
}

// shellQuote wraps s in single quotes so sh treats it as one word.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// FileFetcher reads pre-fetched pages from disk.
// Page 1 is <dir>/<ingredient>.html, page n is <dir>/<ingredient>_<n>.html.
type FileFetcher struct {
	dir     string
	baseURL string
}

// NewFileFetcher creates a fetcher reading snapshots from dir.
// baseURL is only used to build the remediation command.
func NewFileFetcher(dir, baseURL string) *FileFetcher {
	if dir == "" {
		dir = DefaultPagesDir
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FileFetcher{dir: dir, baseURL: baseURL}
}

// SnapshotPath returns the snapshot file path for an ingredient page.
func (f *FileFetcher) SnapshotPath(ingredient string, page int) (string, error) {
	name, err := output.SafeFileName(ingredient)
	if err != nil {
		return "", err
	}
	if page > 1 {
		name = fmt.Sprintf("%s_%d", name, page)
	}
	return filepath.Join(f.dir, name+".html"), nil
}

// Fetch returns the snapshot contents. A missing first page is a
// *MissingLocalFileError; a missing later page is an empty page.
func (f *FileFetcher) Fetch(_ context.Context, ingredient string, page int) (string, error) {
	path, err := f.SnapshotPath(ingredient, page)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read snapshot %s: %w", path, err)
		}
		if page > 1 {
			return "", nil
		}
		urlStr, urlErr := SearchURL(f.baseURL, ingredient, page)
		if urlErr != nil {
			return "", urlErr
		}
		return "", &MissingLocalFileError{Path: path, URL: urlStr}
	}

	return string(data), nil
}
