// Package chat answers questions against the ingested knowledge base.
package chat

import (
	"context"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// Response is the outcome of one question: the generated answer and the
// retrieved references that grounded it.
type Response struct {
	Answer     string                  `json:"answer"`
	References []helpdesk.SearchResult `json:"references"`

	// NoContext is set when retrieval produced no supporting excerpts. The
	// answer was generated without grounding; callers may want to refuse it.
	NoContext bool `json:"noContext"`
}

// Engine wires retrieval and answer generation: embed the question, search
// the index, and pass the ranked excerpts to the answerer.
type Engine struct {
	Embedder helpdesk.Embedder
	Searcher helpdesk.Searcher
	Answerer helpdesk.Answerer

	TopK     int
	MinScore float32
}

// Ask answers a natural language question. Provider errors are surfaced,
// never converted into fabricated answers.
func (e *Engine) Ask(ctx context.Context, question string) (*Response, error) {
	if question == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "question required")
	}

	topK := e.TopK
	if topK <= 0 {
		topK = helpdesk.DefaultTopK
	}

	vectors, err := e.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, helpdesk.Errorf(helpdesk.EPROVIDER,
			"embedder returned %d vectors for one question", len(vectors))
	}

	results, err := e.Searcher.Search(vectors[0], topK, e.MinScore)
	if err != nil {
		return nil, err
	}

	answer, err := e.Answerer.Answer(ctx, question, results)
	if err != nil {
		return nil, err
	}

	return &Response{
		Answer:     answer,
		References: results,
		NoContext:  len(results) == 0,
	}, nil
}
