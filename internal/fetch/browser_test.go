package fetch

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBrowserFetcher_Defaults(t *testing.T) {
	f := NewBrowserFetcher("", 0, "")
	assert.Equal(t, DefaultBaseURL, f.baseURL)
	assert.Equal(t, DefaultBrowserTimeout, f.timeout)
	assert.Equal(t, "body", f.waitFor)
}

func TestBrowserFetcher_InvalidBaseURL(t *testing.T) {
	f := NewBrowserFetcher("not a url", time.Second, "")
	_, err := f.Fetch(context.Background(), "carrot", 1)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid base URL")
}

func TestBrowserFetcher_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}
	if _, err := exec.LookPath("google-chrome"); err != nil {
		if _, err := exec.LookPath("chromium"); err != nil {
			t.Skip("Chrome not installed")
		}
	}

	f := NewBrowserFetcher(DefaultBaseURL, 30*time.Second, "")
	html, err := f.Fetch(context.Background(), "carrot", 1)
	if err != nil {
		t.Skipf("browser fetch unavailable: %v", err)
	}
	assert.Contains(t, html, "<html")
}
