package mock

import (
	"context"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

var _ helpdesk.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of helpdesk.RecordStore.
type RecordStore struct {
	AppendFn          func(ctx context.Context, records []helpdesk.Record) error
	LoadAllFn         func(ctx context.Context) ([]helpdesk.Record, error)
	ReplaceDocumentFn func(ctx context.Context, documentID string) (int, error)
	ClearFn           func(ctx context.Context) error
	DimensionFn       func(ctx context.Context) (int, error)
}

func (s *RecordStore) Append(ctx context.Context, records []helpdesk.Record) error {
	return s.AppendFn(ctx, records)
}

func (s *RecordStore) LoadAll(ctx context.Context) ([]helpdesk.Record, error) {
	return s.LoadAllFn(ctx)
}

func (s *RecordStore) ReplaceDocument(ctx context.Context, documentID string) (int, error) {
	return s.ReplaceDocumentFn(ctx, documentID)
}

func (s *RecordStore) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

func (s *RecordStore) Dimension(ctx context.Context) (int, error) {
	return s.DimensionFn(ctx)
}

var _ helpdesk.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of helpdesk.Searcher.
type Searcher struct {
	SearchFn func(query []float32, k int, minScore float32) ([]helpdesk.SearchResult, error)
}

func (s *Searcher) Search(query []float32, k int, minScore float32) ([]helpdesk.SearchResult, error) {
	return s.SearchFn(query, k, minScore)
}
