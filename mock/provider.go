package mock

import (
	"context"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

var _ helpdesk.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of helpdesk.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

var _ helpdesk.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of helpdesk.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, question string, context []helpdesk.SearchResult) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
	return a.AnswerFn(ctx, question, results)
}
