// Package mem provides the in-memory similarity index built from the record
// store. Search is a brute-force cosine scan, which is plenty for corpora of
// tens of thousands of chunks and keeps the store format the only persistent
// contract.
package mem

import (
	"math"
	"sort"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// Compile-time interface verification.
var _ helpdesk.Searcher = (*Index)(nil)

// Index answers top-k cosine similarity queries over a fixed set of records.
// Vectors are copied into one contiguous slice at build time for
// cache-friendly scanning. The index is immutable after construction and
// safe for concurrent use; rebuild it after the store changes.
type Index struct {
	records []helpdesk.Record
	vectors []float32 // len(records) * dim, row-major
	norms   []float32
	dim     int
}

// NewIndex builds an index from records in insertion order. Returns
// EDIMENSION if the records do not all share one dimensionality.
func NewIndex(records []helpdesk.Record) (*Index, error) {
	idx := &Index{}
	if len(records) == 0 {
		return idx, nil
	}

	idx.dim = len(records[0].Embedding)
	idx.records = make([]helpdesk.Record, len(records))
	copy(idx.records, records)
	idx.vectors = make([]float32, 0, len(records)*idx.dim)
	idx.norms = make([]float32, len(records))

	for i, r := range records {
		if len(r.Embedding) != idx.dim {
			return nil, helpdesk.Errorf(helpdesk.EDIMENSION,
				"record %q has vector of length %d, index dimensionality is %d",
				r.Chunk.ID, len(r.Embedding), idx.dim)
		}
		idx.vectors = append(idx.vectors, r.Embedding...)
		idx.norms[i] = norm(r.Embedding)
	}
	return idx, nil
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Dimension returns the index's vector dimensionality, or 0 if empty.
func (idx *Index) Dimension() int {
	return idx.dim
}

// Search returns up to k records most similar to the query vector, ordered by
// descending cosine similarity. Ties are broken by insertion order, earlier
// record first. Results scoring below minScore are excluded. A zero-norm
// vector has similarity 0 to everything.
func (idx *Index) Search(query []float32, k int, minScore float32) ([]helpdesk.SearchResult, error) {
	if len(idx.records) == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != idx.dim {
		return nil, helpdesk.Errorf(helpdesk.EDIMENSION,
			"query vector has length %d, index dimensionality is %d", len(query), idx.dim)
	}

	queryNorm := norm(query)

	results := make([]helpdesk.SearchResult, 0, len(idx.records))
	for i := range idx.records {
		score := idx.score(i, query, queryNorm)
		if score < minScore {
			continue
		}
		results = append(results, helpdesk.SearchResult{
			Record: idx.records[i],
			Score:  score,
		})
	}

	// Stable sort keeps equal scores in insertion order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// score computes the cosine similarity between the query and row i.
func (idx *Index) score(i int, query []float32, queryNorm float32) float32 {
	if queryNorm == 0 || idx.norms[i] == 0 {
		return 0
	}
	row := idx.vectors[i*idx.dim : (i+1)*idx.dim]
	var dot float32
	for j, q := range query {
		dot += q * row[j]
	}
	return dot / (queryNorm * idx.norms[i])
}

// norm returns the Euclidean norm of v.
func norm(v []float32) float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sum))
}
