package main

import (
	"fmt"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Kind  string `enum:",web,notion" default:"" help:"Filter by source kind (web or notion)"`
	Limit int    `help:"Maximum number of documents to list"`
}

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	filter := helpdesk.DocumentFilter{Limit: c.Limit}
	if c.Kind != "" {
		kind := helpdesk.SourceKind(c.Kind)
		filter.SourceKind = &kind
	}

	docs, err := deps.Catalog.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents ingested. Run 'helpdesk ingest' first.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents (%d total):\n\n", len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.Origin
		}
		fmt.Fprintf(deps.Stdout, "  %d. [%s] %s\n     %s — %d chunks, fetched %s\n",
			i+1, doc.SourceKind, title, doc.Origin, doc.ChunkCount,
			doc.FetchedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
