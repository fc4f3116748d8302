package main

import (
	"fmt"
	"io"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/DylanNgo1808/AI-Helpdesk/chat"
	"github.com/DylanNgo1808/AI-Helpdesk/mem"
)

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask"`
}

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	engine, err := buildEngine(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	resp, err := engine.Ask(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	printResponse(deps.Stdout, resp)
	return nil
}

// buildEngine loads the record store into a similarity index and wires the
// retrieval engine around it.
func buildEngine(deps *Dependencies) (*chat.Engine, error) {
	records, err := deps.Store.LoadAll(deps.Ctx)
	if err != nil {
		return nil, err
	}

	index, err := mem.NewIndex(records)
	if err != nil {
		return nil, err
	}

	return &chat.Engine{
		Embedder: deps.Embedder,
		Searcher: index,
		Answerer: deps.Answerer,
		TopK:     deps.Config.TopK,
		MinScore: deps.Config.MinScore,
	}, nil
}

// printResponse writes the answer and its references.
func printResponse(w io.Writer, resp *chat.Response) {
	fmt.Fprintln(w, resp.Answer)

	if resp.NoContext {
		fmt.Fprintln(w, "\n(no supporting excerpts found in the knowledge base)")
		return
	}

	fmt.Fprintln(w, "\nReferences:")
	for i, ref := range resp.References {
		fmt.Fprintf(w, "  %d. %s (%.2f)\n     %s\n", i+1, ref.Citation(), ref.Score, ref.Record.Origin)
	}
}
