package helpdesk

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs an HTTP GET and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content as plain text with boilerplate
	// (nav, footer, sidebar, scripts) removed. Not yet normalized.
	Text string
}

// Extractor extracts main content from HTML pages.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering. Navigation areas tend to link the
// whole site, so they are expanded before in-content links.
const (
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
)

// DiscoveredLink represents a URL found while crawling, with priority
// metadata used for crawl ordering.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
}

// LinkExtractor extracts same-host links from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns discovered links with priority.
	// The baseURL is used to resolve relative URLs; links pointing off the
	// base host are excluded.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next URL by priority.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of URLs in the queue.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap. It first checks
	// robots.txt for sitemap directives, then falls back to /sitemap.xml.
	// Sitemap indexes are resolved recursively. An empty result is not an
	// error; the crawler falls back to link-following.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
