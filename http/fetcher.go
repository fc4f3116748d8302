// Package http provides HTTP implementations of the fetching and sitemap
// discovery interfaces. Pages are fetched with plain GET requests; sites
// requiring JavaScript rendering are out of scope.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// userAgent identifies the crawler to origin servers.
const userAgent = "AI-Helpdesk/1.0"

var _ helpdesk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs over HTTP.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Non-200 responses and transport failures are reported as EIO.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "invalid url %q", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", helpdesk.Errorf(helpdesk.EIO, "fetch %s: %s", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", helpdesk.Errorf(helpdesk.EIO, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", helpdesk.Errorf(helpdesk.EIO, "read %s: %s", url, err)
	}

	return string(body), nil
}
