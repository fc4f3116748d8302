package helpdesk

import "context"

// Embedder turns texts into fixed-length numeric vectors via an external
// embedding provider. The returned slice has the same order and length as
// the input, and all vectors share the same dimensionality. Failures are
// reported with code EPROVIDER.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Answerer produces a natural language answer to a question from retrieved
// passages. Implementations must ground the answer in the provided context
// and surface provider failures (quota, network, auth) with code EPROVIDER
// rather than fabricating an answer.
type Answerer interface {
	Answer(ctx context.Context, question string, context []SearchResult) (string, error)
}
