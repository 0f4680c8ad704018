package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchURL(t *testing.T) {
	urlStr, err := SearchURL(DefaultBaseURL, "carrot", 2)
	require.NoError(t, err)

	parsed, err := url.Parse(urlStr)
	require.NoError(t, err)
	assert.Equal(t, "recipes.lewagon.com", parsed.Host)
	assert.Equal(t, "carrot", parsed.Query().Get(QueryParam))
	assert.Equal(t, "2", parsed.Query().Get(PageParam))
}

func TestSearchURL_EscapesIngredient(t *testing.T) {
	urlStr, err := SearchURL(DefaultBaseURL, "sweet potato & leek", 1)
	require.NoError(t, err)
	assert.NotContains(t, urlStr, " ")
	assert.NotContains(t, urlStr, "& leek")

	parsed, err := url.Parse(urlStr)
	require.NoError(t, err)
	assert.Equal(t, "sweet potato & leek", parsed.Query().Get(QueryParam))
}

func TestSearchURL_InvalidBase(t *testing.T) {
	_, err := SearchURL("not-a-valid-url", "carrot", 1)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid base URL")
}

func TestHTTPFetcher_Success(t *testing.T) {
	var gotQuery, gotPage, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get(QueryParam)
		gotPage = r.URL.Query().Get(PageParam)
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<html><body><div class="recipe"></div></body></html>`))
	}))
	defer server.Close()

	f := NewHTTPFetcher(&Options{BaseURL: server.URL + "/"})
	html, err := f.Fetch(context.Background(), "carrot", 3)
	require.NoError(t, err)
	assert.Contains(t, html, `<div class="recipe">`)
	assert.Equal(t, "carrot", gotQuery)
	assert.Equal(t, "3", gotPage)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestHTTPFetcher_HTTPError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewHTTPFetcher(&Options{BaseURL: server.URL})
	html, err := f.Fetch(context.Background(), "carrot", 1)
	require.Error(t, err)
	assert.Empty(t, html)
	assert.Equal(t, 1, calls, "fetch must not retry")

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f := NewHTTPFetcher(&Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), "carrot", 1)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "HTTP request failed", fetchErr.Message)
	assert.NotNil(t, fetchErr.Unwrap())
}

func TestNewHTTPFetcher_Defaults(t *testing.T) {
	f := NewHTTPFetcher(nil)
	assert.Equal(t, DefaultBaseURL, f.baseURL)
	assert.Equal(t, DefaultTimeout, f.client.GetClient().Timeout)
}

func TestFileFetcher_ReadsSnapshots(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "carrot.html"), []byte("page one"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "carrot_2.html"), []byte("page two"), 0644))

	f := NewFileFetcher(dir, "")
	ctx := context.Background()

	html, err := f.Fetch(ctx, "carrot", 1)
	require.NoError(t, err)
	assert.Equal(t, "page one", html)

	html, err = f.Fetch(ctx, "carrot", 2)
	require.NoError(t, err)
	assert.Equal(t, "page two", html)

	html, err = f.Fetch(ctx, "carrot", 3)
	require.NoError(t, err)
	assert.Empty(t, html, "missing later page is an empty page")
}

func TestFileFetcher_MissingFirstPage(t *testing.T) {
	dir := t.TempDir()
	f := NewFileFetcher(dir, "")

	_, err := f.Fetch(context.Background(), "carrot", 1)
	require.Error(t, err)

	var missing *MissingLocalFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, filepath.Join(dir, "carrot.html"), missing.Path)
	assert.True(t, strings.HasPrefix(missing.Remediation(), "curl -s "))
	assert.Contains(t, missing.Remediation(), "search%5Bquery%5D=carrot")
	assert.True(t, strings.HasSuffix(missing.Remediation(), "> '"+missing.Path+"'"))
}

func TestMissingLocalFileError_RemediationQuotesWords(t *testing.T) {
	dir := t.TempDir()
	f := NewFileFetcher(dir, "")

	_, err := f.Fetch(context.Background(), "sweet potato", 1)
	var missing *MissingLocalFileError
	require.ErrorAs(t, err, &missing)

	path := filepath.Join(dir, "sweet potato.html")
	assert.Equal(t, path, missing.Path)
	assert.Equal(t, "curl -s '"+missing.URL+"' > '"+path+"'", missing.Remediation())
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"carrot", `'carrot'`},
		{"pages/sweet potato.html", `'pages/sweet potato.html'`},
		{"cook's choice", `'cook'\''s choice'`},
		{"", `''`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shellQuote(tt.input))
		})
	}
}

func TestFileFetcher_RejectsUnsafeIngredient(t *testing.T) {
	f := NewFileFetcher(t.TempDir(), "")
	_, err := f.Fetch(context.Background(), "..", 1)
	assert.Error(t, err)
}

func TestFileFetcher_SnapshotPathSanitizes(t *testing.T) {
	f := NewFileFetcher("pages", "")
	path, err := f.SnapshotPath("../etc/passwd", 1)
	require.NoError(t, err)
	assert.Equal(t, "pages", filepath.Dir(path))
}
