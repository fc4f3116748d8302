// Package goquery extracts links from HTML pages using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/PuerkitoBio/goquery"
)

// Compile-time interface verification.
var _ helpdesk.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds same-host links in HTML using CSS selectors that work
// across documentation frameworks. Links found in navigation areas (nav bars,
// sidebars, tables of contents) carry higher priority than in-content links,
// since navigation tends to link the whole site.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// navSelectors match navigation, sidebar, and TOC areas across common
// documentation layouts.
const navSelectors = `nav a[href], [role="navigation"] a[href], aside a[href], ` +
	`.sidebar a[href], .toc a[href], .table-of-contents a[href], ` +
	`.nav a[href], .menu a[href], .navbar a[href]`

// contentSelectors match the main content areas.
const contentSelectors = `main a[href], article a[href], .content a[href], .doc-content a[href]`

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority occurrence.
// Off-host links, non-HTTP schemes, and self-references are excluded.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]helpdesk.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "invalid base URL: %s", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "parse HTML: %s", err)
	}

	// Track each URL's index in the result slice for O(1) priority upgrades.
	seen := make(map[string]int)
	var links []helpdesk.DiscoveredLink

	collect := func(selector string, priority helpdesk.LinkPriority) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}
			if !isSameHost(base, resolved) {
				return
			}

			link := helpdesk.DiscoveredLink{
				URL:      resolved,
				Priority: priority,
				Text:     strings.TrimSpace(sel.Text()),
			}

			if idx, ok := seen[resolved]; ok {
				if priority > links[idx].Priority {
					links[idx] = link
				}
				return
			}
			seen[resolved] = len(links)
			links = append(links, link)
		})
	}

	collect(navSelectors, helpdesk.PriorityNavigation)
	collect(contentSelectors, helpdesk.PriorityContent)

	return links, nil
}

// resolveURL resolves href against the base URL. Returns empty string for
// unparseable hrefs and self-references. Fragments are stripped so URLs
// differing only by anchor collapse to one.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks the resolved URL against the base host. Exact match;
// subdomains count as different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
