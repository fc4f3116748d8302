package slog

import (
	"context"
	"log/slog"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// Compile-time interface verification.
var _ helpdesk.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with operation logging.
type LoggingEmbedder struct {
	next   helpdesk.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next helpdesk.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		dim := 0
		if len(vectors) > 0 {
			dim = len(vectors[0])
		}
		e.logger.Info("embed batch",
			"texts", len(texts),
			"dimension", dim,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}
