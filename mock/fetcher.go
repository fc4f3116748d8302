package mock

import (
	"context"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

var _ helpdesk.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of helpdesk.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ helpdesk.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of helpdesk.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*helpdesk.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*helpdesk.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ helpdesk.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of helpdesk.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]helpdesk.DiscoveredLink, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]helpdesk.DiscoveredLink, error) {
	return l.ExtractLinksFn(html, baseURL)
}
