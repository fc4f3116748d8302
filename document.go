package helpdesk

import (
	"context"
	"time"
)

// SourceKind identifies the kind of source a document was ingested from.
type SourceKind string

// Supported source kinds.
const (
	SourceWeb    SourceKind = "web"
	SourceNotion SourceKind = "notion"
)

// Valid returns true if the source kind is one of the supported kinds.
func (k SourceKind) Valid() bool {
	return k == SourceWeb || k == SourceNotion
}

// Document represents a logical source unit ingested from one of the
// knowledge sources. The ID is stable and derived from the origin, so
// re-ingesting the same origin replaces the previous version.
//
// Content holds the normalized (whitespace-collapsed) text of the document.
// It is chunked and embedded during ingestion and is not persisted as a
// whole; the record store keeps per-chunk text instead.
type Document struct {
	ID          string     `json:"id"`
	SourceKind  SourceKind `json:"sourceKind"`
	Origin      string     `json:"origin"` // URL or file path
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	ContentHash string     `json:"contentHash"`
	ChunkCount  int        `json:"chunkCount"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if !d.SourceKind.Valid() {
		return Errorf(EINVALID, "document source kind %q invalid", d.SourceKind)
	}
	if d.Origin == "" {
		return Errorf(EINVALID, "document origin required")
	}
	return nil
}

// DocumentService represents a catalog of ingested documents. The catalog is
// bookkeeping only; the record store remains the source of truth for chunk
// and vector data.
type DocumentService interface {
	// UpsertDocument creates the document or replaces the existing entry
	// with the same ID.
	UpsertDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument removes a document from the catalog.
	// Returns ENOTFOUND if the document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteAllDocuments empties the catalog.
	DeleteAllDocuments(ctx context.Context) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID         *string     `json:"id"`
	SourceKind *SourceKind `json:"sourceKind"`
	Origin     *string     `json:"origin"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Source yields documents from an external knowledge source, such as a web
// crawler or a Notion export reader. Implementations return documents with
// normalized content, a stable origin, and a title.
type Source interface {
	Documents(ctx context.Context) ([]*Document, error)
}
