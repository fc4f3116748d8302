package crawl_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/DylanNgo1808/AI-Helpdesk/crawl"
	"github.com/DylanNgo1808/AI-Helpdesk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughExtractor treats the fetched body as already-extracted text.
func passthroughExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(html string) (*helpdesk.ExtractResult, error) {
			return &helpdesk.ExtractResult{Title: "Page", Text: html}, nil
		},
	}
}

func noLinks() *mock.LinkExtractor {
	return &mock.LinkExtractor{
		ExtractLinksFn: func(html, baseURL string) ([]helpdesk.DiscoveredLink, error) {
			return nil, nil
		},
	}
}

func TestCrawler_SitemapDiscovery(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	fetched := make(map[string]bool)

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs"},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{
					"https://example.com/docs/intro",
					"https://example.com/docs/usage",
					"https://other.com/docs/offsite",
				}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				mu.Lock()
				fetched[url] = true
				mu.Unlock()
				return "content of " + url, nil
			},
		},
		Extractor:   passthroughExtractor(),
		RetryDelays: []time.Duration{},
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Off-host sitemap entries are excluded before fetching.
	assert.False(t, fetched["https://other.com/docs/offsite"])

	// Sitemap order is preserved.
	assert.Equal(t, "https://example.com/docs/intro", docs[0].Origin)
	assert.Equal(t, "https://example.com/docs/usage", docs[1].Origin)

	for _, doc := range docs {
		assert.Equal(t, helpdesk.SourceWeb, doc.SourceKind)
		assert.Equal(t, helpdesk.NewDocumentID(helpdesk.SourceWeb, doc.Origin), doc.ID)
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.FetchedAt.IsZero())
	}
}

func TestCrawler_SitemapRespectsMaxPages(t *testing.T) {
	t.Parallel()

	urls := make([]string, 20)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/docs/page-%02d", i)
	}

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs", MaxPages: 3},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return urls, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "content of " + url, nil
			},
		},
		Extractor:   passthroughExtractor(),
		RetryDelays: []time.Duration{},
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestCrawler_SitemapFailedPagesSkipped(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs"},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{
					"https://example.com/docs/good",
					"https://example.com/docs/bad",
				}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if strings.HasSuffix(url, "/bad") {
					return "", helpdesk.Errorf(helpdesk.EIO, "status 500")
				}
				return "content", nil
			},
		},
		Extractor:   passthroughExtractor(),
		RetryDelays: []time.Duration{},
	}

	var failed []string
	c.Progress = func(event crawl.ProgressEvent) {
		if event.Type == crawl.ProgressFailed {
			failed = append(failed, event.URL)
		}
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "https://example.com/docs/good", docs[0].Origin)
	assert.Equal(t, []string{"https://example.com/docs/bad"}, failed)
}

func TestCrawler_LinkFollowingFallback(t *testing.T) {
	t.Parallel()

	pages := map[string][]helpdesk.DiscoveredLink{
		"https://example.com/docs": {
			{URL: "https://example.com/docs/a", Priority: helpdesk.PriorityNavigation},
			{URL: "https://example.com/docs/b", Priority: helpdesk.PriorityContent},
			{URL: "https://example.com/blog/offscope", Priority: helpdesk.PriorityContent},
			{URL: "https://other.com/docs/offsite", Priority: helpdesk.PriorityContent},
		},
		"https://example.com/docs/a": {
			{URL: "https://example.com/docs", Priority: helpdesk.PriorityContent},
		},
		"https://example.com/docs/b": nil,
	}

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs"},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return nil, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "content of " + url, nil
			},
		},
		Extractor: passthroughExtractor(),
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]helpdesk.DiscoveredLink, error) {
				return pages[baseURL], nil
			},
		},
		RetryDelays: []time.Duration{},
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	origins := make(map[string]bool)
	for _, doc := range docs {
		origins[doc.Origin] = true
	}
	assert.True(t, origins["https://example.com/docs"])
	assert.True(t, origins["https://example.com/docs/a"])
	assert.True(t, origins["https://example.com/docs/b"])
	assert.False(t, origins["https://example.com/blog/offscope"])
	assert.False(t, origins["https://other.com/docs/offsite"])
}

func TestCrawler_LinkFollowingRespectsMaxPages(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs", MaxPages: 2},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return nil, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "content of " + url, nil
			},
		},
		Extractor: passthroughExtractor(),
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]helpdesk.DiscoveredLink, error) {
				// Every page links to two more pages, without bound.
				return []helpdesk.DiscoveredLink{
					{URL: baseURL + "/x"},
					{URL: baseURL + "/y"},
				}, nil
			},
		},
		RetryDelays: []time.Duration{},
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestCrawler_AllowedPathsScope(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{
			URL:          "https://example.com/",
			AllowedPaths: []string{"/docs/", "/faq/"},
		},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{
					"https://example.com/docs/intro",
					"https://example.com/faq/billing",
					"https://example.com/blog/post",
				}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "content of " + url, nil
			},
		},
		Extractor:   passthroughExtractor(),
		RetryDelays: []time.Duration{},
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "https://example.com/docs/intro", docs[0].Origin)
	assert.Equal(t, "https://example.com/faq/billing", docs[1].Origin)
}

func TestCrawler_EmptyPagesDropped(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs"},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{
					"https://example.com/docs/full",
					"https://example.com/docs/empty",
				}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if strings.HasSuffix(url, "/empty") {
					return "   \n\t  ", nil
				}
				return "real content", nil
			},
		},
		Extractor:   passthroughExtractor(),
		RetryDelays: []time.Duration{},
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "https://example.com/docs/full", docs[0].Origin)
}

func TestCrawler_ContentNormalized(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs"},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{"https://example.com/docs/page"}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "  hello \n\n  world\t again ", nil
			},
		},
		Extractor:   passthroughExtractor(),
		RetryDelays: []time.Duration{},
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "hello world again", docs[0].Content)
	assert.Equal(t, helpdesk.HashContent("hello world again"), docs[0].ContentHash)
}

func TestCrawler_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	attempts := 0

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs"},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{"https://example.com/docs/flaky"}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				mu.Lock()
				defer mu.Unlock()
				attempts++
				if attempts < 3 {
					return "", helpdesk.Errorf(helpdesk.EIO, "status 503")
				}
				return "finally", nil
			},
		},
		Extractor:   passthroughExtractor(),
		RetryDelays: []time.Duration{time.Millisecond, time.Millisecond},
	}

	docs, err := c.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 3, attempts)
}

func TestCrawler_RateLimiterConsulted(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var domains []string

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs"},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{"https://example.com/docs/a", "https://example.com/docs/b"}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "content", nil
			},
		},
		Extractor: passthroughExtractor(),
		RateLimiter: &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				mu.Lock()
				domains = append(domains, domain)
				mu.Unlock()
				return nil
			},
		},
		RetryDelays: []time.Duration{},
	}

	_, err := c.Documents(context.Background())
	require.NoError(t, err)
	assert.Len(t, domains, 2)
	for _, d := range domains {
		assert.Equal(t, "example.com", d)
	}
}

func TestCrawler_InvalidSourceURL(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{Source: helpdesk.WebSource{URL: "not a url"}}

	_, err := c.Documents(context.Background())
	require.Error(t, err)
	assert.Equal(t, helpdesk.EINVALID, helpdesk.ErrorCode(err))
}

func TestCrawler_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &crawl.Crawler{
		Source: helpdesk.WebSource{URL: "https://example.com/docs"},
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return nil, ctx.Err()
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", ctx.Err()
			},
		},
		Extractor:   passthroughExtractor(),
		Links:       noLinks(),
		RetryDelays: []time.Duration{},
	}

	_, err := c.Documents(ctx)
	require.Error(t, err)
}

func TestDomainLimiter_EnforcesDelay(t *testing.T) {
	t.Parallel()

	// 100 rps = 10ms between requests to the same domain.
	limiter := crawl.NewDomainLimiter(100)
	ctx := context.Background()

	start := time.Now()
	for range 3 {
		require.NoError(t, limiter.Wait(ctx, "example.com"))
	}
	elapsed := time.Since(start)

	// First request is immediate, the next two wait ~10ms each.
	assert.GreaterOrEqual(t, elapsed, 15*time.Millisecond)
}

func TestDomainLimiter_DomainsIndependent(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(1) // 1 rps: the second same-domain wait would take ~1s
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "a.example.com"))
	require.NoError(t, limiter.Wait(ctx, "b.example.com"))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestFetchWithRetryDelays_ContextCanceledBetweenAttempts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	fetch := func(ctx context.Context, url string) (string, error) {
		cancel()
		return "", helpdesk.Errorf(helpdesk.EIO, "status 500")
	}

	_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, []time.Duration{time.Minute})
	require.ErrorIs(t, err, context.Canceled)
}
