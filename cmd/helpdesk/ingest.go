package main

import (
	"fmt"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/DylanNgo1808/AI-Helpdesk/crawl"
	"github.com/DylanNgo1808/AI-Helpdesk/goquery"
	hdhttp "github.com/DylanNgo1808/AI-Helpdesk/http"
	"github.com/DylanNgo1808/AI-Helpdesk/ingest"
	"github.com/DylanNgo1808/AI-Helpdesk/notion"
	"github.com/DylanNgo1808/AI-Helpdesk/readability"
	"github.com/DylanNgo1808/AI-Helpdesk/trafilatura"
)

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	WebURL     string `help:"Crawl a single site (in addition to configured sources)"`
	NotionPath string `help:"Read a Notion export file or directory"`
	MaxPages   int    `help:"Page limit for --web-url"`
	Extractor  string `enum:"trafilatura,readability" default:"trafilatura" help:"HTML content extractor"`
	Force      bool   `short:"f" help:"Re-embed documents even when unchanged"`
}

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	if c.WebURL != "" {
		cfg.Web = append(cfg.Web, helpdesk.WebSource{URL: c.WebURL, MaxPages: c.MaxPages})
	}
	if c.NotionPath != "" {
		cfg.Notion = append(cfg.Notion, helpdesk.NotionSource{Path: c.NotionPath})
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}
	if len(cfg.Web) == 0 && len(cfg.Notion) == 0 {
		return helpdesk.Errorf(helpdesk.EINVALID,
			"no sources configured. Pass --config, --web-url, or --notion-path")
	}

	sources := buildSources(cfg, deps, c.extractor())

	pipeline := &ingest.Pipeline{
		Store:        deps.Store,
		Embedder:     deps.Embedder,
		Catalog:      deps.Catalog,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		Force:        c.Force,
		Progress: func(event ingest.ProgressEvent) {
			switch event.Type {
			case ingest.ProgressStarted:
				fmt.Fprintf(deps.Stdout, "Ingesting %d documents\n", event.Total)
			case ingest.ProgressIngested:
				fmt.Fprintf(deps.Stdout, "  + %s (%d chunks)\n", event.Document.Origin, event.Chunks)
			case ingest.ProgressSkipped:
				fmt.Fprintf(deps.Stdout, "  = %s (unchanged)\n", event.Document.Origin)
			case ingest.ProgressFailed:
				fmt.Fprintf(deps.Stderr, "  ! %s: %s\n", event.Document.Origin, helpdesk.ErrorMessage(event.Error))
			}
		},
	}

	result, err := pipeline.IngestSources(deps.Ctx, sources)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d ingested, %d unchanged, %d failed, %d chunks stored\n",
		result.Ingested, result.Skipped, result.Failed, result.Chunks)
	return nil
}

func (c *IngestCmd) extractor() helpdesk.Extractor {
	if c.Extractor == "readability" {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

// buildSources assembles one Source per configured site and Notion export.
func buildSources(cfg helpdesk.Config, deps *Dependencies, extractor helpdesk.Extractor) []helpdesk.Source {
	var sources []helpdesk.Source

	for _, web := range cfg.Web {
		// One token per configured delay interval.
		rps := 1.0 / web.Delay().Seconds()
		sources = append(sources, &crawl.Crawler{
			Source:      web,
			Sitemaps:    hdhttp.NewSitemapService(nil),
			Fetcher:     hdhttp.NewFetcher(),
			Extractor:   extractor,
			Links:       goquery.NewLinkExtractor(),
			RateLimiter: crawl.NewDomainLimiter(rps),
			Progress: func(event crawl.ProgressEvent) {
				if event.Type == crawl.ProgressFailed {
					fmt.Fprintf(deps.Stderr, "  ! fetch %s: %v\n", event.URL, event.Error)
				}
			},
		})
	}
	for _, n := range cfg.Notion {
		sources = append(sources, &notion.Reader{Source: n})
	}
	return sources
}
