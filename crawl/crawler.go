// Package crawl turns documentation sites into documents. It coordinates
// sitemap discovery, rate-limited fetching, content extraction, and
// link-following fallback for sites without sitemaps.
package crawl

import (
	"context"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"golang.org/x/sync/errgroup"
)

// Frontier configuration for link-following crawls.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// defaultConcurrency bounds parallel fetches when sitemap URLs are known
// up front.
const defaultConcurrency = 10

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Compile-time interface verification.
var _ helpdesk.Source = (*Crawler)(nil)

// Crawler fetches a documentation site and yields one document per page.
// Discovery is sitemap-first; sites without a sitemap fall back to
// breadth-first link following from the start URL. Both paths stay on the
// start URL's host and honor the source's path scope and page budget.
type Crawler struct {
	Source      helpdesk.WebSource
	Sitemaps    helpdesk.SitemapService
	Fetcher     helpdesk.Fetcher
	Extractor   helpdesk.Extractor
	Links       helpdesk.LinkExtractor
	RateLimiter helpdesk.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Progress    ProgressFunc
}

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	position int
	url      string
	doc      *helpdesk.Document
	err      error
}

// Documents crawls the configured site and returns the extracted documents.
// Pages that fail to fetch or yield no content are skipped, not fatal; an
// error is returned only when the source URL itself is unusable or the
// context is canceled.
func (c *Crawler) Documents(ctx context.Context) ([]*helpdesk.Document, error) {
	base, err := url.Parse(c.Source.URL)
	if err != nil || base.Host == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "invalid source url %q", c.Source.URL)
	}

	maxPages := c.Source.MaxPages
	if maxPages <= 0 {
		maxPages = helpdesk.DefaultMaxPages
	}

	urls, err := c.Sitemaps.DiscoverURLs(ctx, c.Source.URL)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}

	var scoped []string
	for _, u := range urls {
		if c.inScope(base, u) {
			scoped = append(scoped, u)
		}
		if len(scoped) >= maxPages {
			break
		}
	}

	if len(scoped) == 0 {
		return c.followLinks(ctx, base, maxPages)
	}
	return c.fetchAll(ctx, scoped)
}

// fetchAll processes a known URL list concurrently, preserving sitemap order
// in the returned documents.
func (c *Crawler) fetchAll(ctx context.Context, urls []string) ([]*helpdesk.Document, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	total := len(urls)
	c.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan crawlResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- c.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]crawlResult, total)
	var completed atomic.Int64
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if r.err != nil {
			c.notify(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       r.url,
				Error:     r.err,
			})
			continue
		}
		c.notify(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.url,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([]*helpdesk.Document, 0, total)
	for _, r := range results {
		if r.err != nil || r.doc == nil {
			continue
		}
		docs = append(docs, r.doc)
	}

	c.notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return docs, nil
}

// followLinks crawls breadth-first from the base URL when no sitemap exists.
// URLs are processed sequentially to keep rate limiting and frontier
// management simple.
func (c *Crawler) followLinks(ctx context.Context, base *url.URL, maxPages int) ([]*helpdesk.Document, error) {
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(helpdesk.DiscoveredLink{
		URL:      base.String(),
		Priority: helpdesk.PriorityNavigation,
	})

	c.notify(ProgressEvent{Type: ProgressStarted})

	var docs []*helpdesk.Document
	for len(docs) < maxPages {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		html, err := c.fetch(ctx, link.URL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.notify(ProgressEvent{Type: ProgressFailed, URL: link.URL, Error: err})
			continue
		}

		if c.Links != nil {
			links, err := c.Links.ExtractLinks(html, link.URL)
			if err == nil {
				for _, discovered := range links {
					if c.inScope(base, discovered.URL) {
						frontier.Push(discovered)
					}
				}
			}
		}

		doc, err := c.buildDocument(link.URL, html)
		if err != nil {
			c.notify(ProgressEvent{Type: ProgressFailed, URL: link.URL, Error: err})
			continue
		}
		if doc == nil {
			continue
		}
		docs = append(docs, doc)
		c.notify(ProgressEvent{Type: ProgressCompleted, Completed: len(docs), URL: link.URL})
	}

	c.notify(ProgressEvent{Type: ProgressFinished, Completed: len(docs), Total: len(docs)})
	return docs, nil
}

// processURL fetches and extracts a single page.
func (c *Crawler) processURL(ctx context.Context, position int, pageURL string) crawlResult {
	result := crawlResult{position: position, url: pageURL}

	html, err := c.fetch(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}

	doc, err := c.buildDocument(pageURL, html)
	if err != nil {
		result.err = err
		return result
	}
	result.doc = doc
	return result
}

// fetch rate-limits, then retrieves a page with retry.
func (c *Crawler) fetch(ctx context.Context, pageURL string) (string, error) {
	if c.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", helpdesk.Errorf(helpdesk.EINVALID, "invalid url %q", pageURL)
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, delays)
}

// buildDocument extracts and normalizes page content. Pages with no usable
// content produce a nil document rather than an error.
func (c *Crawler) buildDocument(pageURL, html string) (*helpdesk.Document, error) {
	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	content := helpdesk.NormalizeText(extracted.Text)
	if content == "" {
		return nil, nil
	}

	title := extracted.Title
	if title == "" {
		title = pageURL
	}

	return &helpdesk.Document{
		ID:          helpdesk.NewDocumentID(helpdesk.SourceWeb, pageURL),
		SourceKind:  helpdesk.SourceWeb,
		Origin:      pageURL,
		Title:       title,
		Content:     content,
		ContentHash: helpdesk.HashContent(content),
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// inScope reports whether a URL belongs to the crawl: same host as the base
// and, when path scopes are configured, under one of them. With no scopes
// the base URL's own path is the prefix.
func (c *Crawler) inScope(base *url.URL, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != base.Host {
		return false
	}

	if len(c.Source.AllowedPaths) == 0 {
		return strings.HasPrefix(u.Path, base.Path)
	}
	for _, prefix := range c.Source.AllowedPaths {
		if strings.HasPrefix(u.Path, prefix) {
			return true
		}
	}
	return false
}

func (c *Crawler) notify(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
