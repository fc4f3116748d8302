// Package readability extracts page content with go-readability. It is an
// alternative to the trafilatura extractor for sites whose markup defeats
// trafilatura's heuristics.
package readability

import (
	"strings"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements helpdesk.Extractor at compile time.
var _ helpdesk.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main text.
func (e *Extractor) Extract(rawHTML string) (*helpdesk.ExtractResult, error) {
	if rawHTML == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, helpdesk.Errorf(helpdesk.EIO, "readability extraction failed: %s", err)
	}

	return &helpdesk.ExtractResult{
		Title: article.Title,
		Text:  article.TextContent,
	}, nil
}
