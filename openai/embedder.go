// Package openai implements the embedding and answer generation providers
// using the OpenAI API.
package openai

import (
	"context"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/openai/openai-go"
)

// DefaultEmbeddingModel is the embedding model used unless overridden.
const DefaultEmbeddingModel = openai.EmbeddingModelTextEmbedding3Large

// Compile-time interface verification.
var _ helpdesk.Embedder = (*Embedder)(nil)

// Embedder implements helpdesk.Embedder using the OpenAI embeddings API.
// One call embeds a whole batch of texts.
type Embedder struct {
	client openai.Client
	model  openai.EmbeddingModel
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client openai.Client, model openai.EmbeddingModel) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Embed returns one vector per input text, in input order. All vectors share
// the model's dimensionality. Provider failures are reported as EPROVIDER.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: e.model,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, helpdesk.Errorf(helpdesk.EPROVIDER, "openai embeddings: %s", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, helpdesk.Errorf(helpdesk.EPROVIDER,
			"openai embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, helpdesk.Errorf(helpdesk.EPROVIDER,
				"openai embeddings: index %d out of range", d.Index)
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}
