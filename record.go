package helpdesk

import (
	"context"
	"time"
)

// Record is the persisted unit of the vector store: a chunk, its embedding
// vector, and the citation metadata of the document it came from. Records are
// owned by the store; they are created during ingestion and destroyed only by
// an explicit replace or clear.
type Record struct {
	Seq        int64      `json:"seq"`
	Chunk      Chunk      `json:"chunk"`
	Embedding  []float32  `json:"embedding"`
	SourceKind SourceKind `json:"sourceKind"`
	Origin     string     `json:"origin"`
	Title      string     `json:"title"`
	FetchedAt  time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if err := r.Chunk.Validate(); err != nil {
		return err
	}
	if len(r.Embedding) == 0 {
		return Errorf(EINVALID, "record embedding required")
	}
	if !r.SourceKind.Valid() {
		return Errorf(EINVALID, "record source kind %q invalid", r.SourceKind)
	}
	if r.Origin == "" {
		return Errorf(EINVALID, "record origin required")
	}
	return nil
}

// RecordStore provides durable, append-friendly persistence of records under
// one storage root. Appends and replaces are serialized (single writer);
// loads may run concurrently with each other.
type RecordStore interface {
	// Append writes new records without disturbing existing ones. The write
	// is all-or-nothing for the records passed in one call. Returns
	// EDIMENSION if a vector's length differs from the store's established
	// dimensionality (the first append establishes it), EIO on disk failure.
	Append(ctx context.Context, records []Record) error

	// LoadAll reads the entire store into memory in insertion order. Returns
	// ECORRUPT if a record is malformed; the records read before the corrupt
	// line are returned alongside the error for diagnostics.
	LoadAll(ctx context.Context) ([]Record, error)

	// ReplaceDocument removes all records belonging to a document and
	// returns the number removed. Atomic with respect to concurrent LoadAll.
	ReplaceDocument(ctx context.Context, documentID string) (int, error)

	// Clear drops all records.
	Clear(ctx context.Context) error

	// Dimension returns the store's vector dimensionality, or 0 if the store
	// is empty.
	Dimension(ctx context.Context) (int, error)
}

// SearchResult represents a retrieval match: a stored record and its cosine
// similarity to the query. Ephemeral, produced per query.
type SearchResult struct {
	Record Record  `json:"record"`
	Score  float32 `json:"score"`
}

// Citation returns a human-readable citation for the result, preferring the
// document title and falling back to the origin.
func (r SearchResult) Citation() string {
	if r.Record.Title != "" {
		return r.Record.Title
	}
	return r.Record.Origin
}

// Searcher answers top-k similarity queries over stored records.
type Searcher interface {
	// Search returns up to k records most similar to the query vector,
	// ordered by descending cosine similarity with ties broken by insertion
	// order. Results scoring below minScore are excluded. k <= 0 yields an
	// empty result; an empty index yields an empty result. Returns
	// EDIMENSION if the query vector's length disagrees with the index.
	Search(query []float32, k int, minScore float32) ([]SearchResult, error)
}
