// Package ingest turns source documents into stored, embedded records.
package ingest

import (
	"context"
	"sync"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"golang.org/x/sync/errgroup"
)

// Defaults for pipeline tuning.
const (
	DefaultBatchSize   = 64
	DefaultConcurrency = 4
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressIngested
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during ingestion.
type ProgressEvent struct {
	Type     ProgressType
	Document *helpdesk.Document
	Chunks   int
	Total    int
	Error    error
}

// ProgressFunc is a callback for reporting ingestion progress.
type ProgressFunc func(event ProgressEvent)

// Result holds the outcome of an ingestion run.
type Result struct {
	Ingested int
	Skipped  int
	Failed   int
	Chunks   int
}

// Pipeline ingests documents: chunk, embed, and store, one atomic batch per
// document. Documents are processed concurrently; the record store serializes
// writes internally.
type Pipeline struct {
	Store    helpdesk.RecordStore
	Embedder helpdesk.Embedder

	// Catalog, when set, tracks ingested documents and enables change
	// detection: documents whose content hash is unchanged are skipped.
	Catalog helpdesk.DocumentService

	ChunkSize    int
	ChunkOverlap int

	// BatchSize bounds the number of chunk texts sent to the embedder in one
	// call. Defaults to DefaultBatchSize.
	BatchSize int

	// Concurrency bounds the number of documents processed in parallel.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// Force re-embeds documents even when their content hash is unchanged.
	Force bool

	Progress ProgressFunc
}

// IngestSources collects documents from all sources and ingests them.
// A source that fails to enumerate aborts the run; per-document failures
// are counted and reported, not fatal.
func (p *Pipeline) IngestSources(ctx context.Context, sources []helpdesk.Source) (*Result, error) {
	var docs []*helpdesk.Document
	for _, src := range sources {
		found, err := src.Documents(ctx)
		if err != nil {
			return nil, err
		}
		docs = append(docs, found...)
	}
	return p.IngestDocuments(ctx, docs)
}

// IngestDocuments ingests the given documents. Each document is replaced and
// appended as one batch only after all of its embeddings succeed; a failure
// in one document does not disturb the others.
func (p *Pipeline) IngestDocuments(ctx context.Context, docs []*helpdesk.Document) (*Result, error) {
	if err := helpdesk.ValidateChunking(p.ChunkSize, p.ChunkOverlap); err != nil {
		return nil, err
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	p.notify(ProgressEvent{Type: ProgressStarted, Total: len(docs)})

	var mu sync.Mutex
	var result Result

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			skipped, chunks, err := p.ingestOne(gctx, doc)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed++
				p.notify(ProgressEvent{Type: ProgressFailed, Document: doc, Error: err})
				// Cancellation aborts the run; other failures are per-document.
				if gctx.Err() != nil {
					return err
				}
			case skipped:
				result.Skipped++
				p.notify(ProgressEvent{Type: ProgressSkipped, Document: doc})
			default:
				result.Ingested++
				result.Chunks += chunks
				p.notify(ProgressEvent{Type: ProgressIngested, Document: doc, Chunks: chunks})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.notify(ProgressEvent{Type: ProgressFinished, Total: len(docs)})
	return &result, nil
}

// ingestOne processes a single document. Returns skipped=true when the
// document's content hash matches the catalog entry and Force is off.
func (p *Pipeline) ingestOne(ctx context.Context, doc *helpdesk.Document) (skipped bool, chunks int, err error) {
	if p.Catalog != nil && !p.Force {
		existing, err := p.Catalog.FindDocumentByID(ctx, doc.ID)
		if err == nil && existing.ContentHash == doc.ContentHash && doc.ContentHash != "" {
			return true, 0, nil
		}
		if err != nil && helpdesk.ErrorCode(err) != helpdesk.ENOTFOUND {
			return false, 0, err
		}
	}

	chunked, err := helpdesk.ChunkDocument(doc, p.ChunkSize, p.ChunkOverlap)
	if err != nil {
		return false, 0, err
	}

	records, err := p.embedChunks(ctx, doc, chunked)
	if err != nil {
		return false, 0, helpdesk.Errorf(helpdesk.ErrorCode(err), "ingest %s: %s", doc.Origin, helpdesk.ErrorMessage(err))
	}

	// Remove the previous version first so a re-ingested document never
	// appears twice. Only reached after every embedding succeeded.
	if _, err := p.Store.ReplaceDocument(ctx, doc.ID); err != nil {
		return false, 0, err
	}
	if len(records) > 0 {
		if err := p.Store.Append(ctx, records); err != nil {
			return false, 0, err
		}
	}

	if p.Catalog != nil {
		entry := *doc
		entry.Content = ""
		entry.ChunkCount = len(records)
		if err := p.Catalog.UpsertDocument(ctx, &entry); err != nil {
			return false, 0, err
		}
	}

	return false, len(records), nil
}

// embedChunks embeds chunk texts in batches and assembles records.
func (p *Pipeline) embedChunks(ctx context.Context, doc *helpdesk.Document, chunks []helpdesk.Chunk) ([]helpdesk.Record, error) {
	batchSize := p.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	records := make([]helpdesk.Record, 0, len(chunks))
	for start := 0; start < len(chunks); start += batchSize {
		end := min(start+batchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := p.Embedder.Embed(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(batch) {
			return nil, helpdesk.Errorf(helpdesk.EPROVIDER,
				"embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}

		for i, c := range batch {
			records = append(records, helpdesk.Record{
				Chunk:      c,
				Embedding:  vectors[i],
				SourceKind: doc.SourceKind,
				Origin:     doc.Origin,
				Title:      doc.Title,
				FetchedAt:  doc.FetchedAt,
			})
		}
	}
	return records, nil
}

func (p *Pipeline) notify(event ProgressEvent) {
	if p.Progress != nil {
		p.Progress(event)
	}
}
