// Package trafilatura extracts main content from HTML pages, stripping
// navigation, sidebars, footers, and scripts.
package trafilatura

import (
	"strings"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/markusmobius/go-trafilatura"
)

// Compile-time interface verification.
var _ helpdesk.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML as
// plain text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main content
// text. Pages where no main content can be identified return an empty Text,
// not an error.
func (e *Extractor) Extract(rawHTML string) (*helpdesk.ExtractResult, error) {
	if rawHTML == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, helpdesk.Errorf(helpdesk.EIO, "extract content: %s", err)
	}

	return &helpdesk.ExtractResult{
		Title: result.Metadata.Title,
		Text:  result.ContentText,
	}, nil
}
