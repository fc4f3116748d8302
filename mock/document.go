package mock

import (
	"context"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

var _ helpdesk.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of helpdesk.DocumentService.
type DocumentService struct {
	UpsertDocumentFn     func(ctx context.Context, doc *helpdesk.Document) error
	FindDocumentByIDFn   func(ctx context.Context, id string) (*helpdesk.Document, error)
	FindDocumentsFn      func(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error)
	DeleteDocumentFn     func(ctx context.Context, id string) error
	DeleteAllDocumentsFn func(ctx context.Context) error
}

func (s *DocumentService) UpsertDocument(ctx context.Context, doc *helpdesk.Document) error {
	return s.UpsertDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*helpdesk.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) DeleteAllDocuments(ctx context.Context) error {
	return s.DeleteAllDocumentsFn(ctx)
}

var _ helpdesk.Source = (*Source)(nil)

// Source is a mock implementation of helpdesk.Source.
type Source struct {
	DocumentsFn func(ctx context.Context) ([]*helpdesk.Document, error)
}

func (s *Source) Documents(ctx context.Context) ([]*helpdesk.Document, error) {
	return s.DocumentsFn(ctx)
}
