package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// Compile-time interface verification.
var _ helpdesk.DocumentService = (*DocumentService)(nil)

// DocumentService implements helpdesk.DocumentService using SQLite.
// Document content is not stored; the catalog keeps identity, hashes, and
// ingestion metadata only.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// UpsertDocument creates the document or replaces the existing entry with
// the same ID.
func (s *DocumentService) UpsertDocument(ctx context.Context, doc *helpdesk.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.ID == "" {
		return helpdesk.Errorf(helpdesk.EINVALID, "document ID required")
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_kind, origin, title, content_hash, chunk_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_kind = excluded.source_kind,
			origin = excluded.origin,
			title = excluded.title,
			content_hash = excluded.content_hash,
			chunk_count = excluded.chunk_count,
			fetched_at = excluded.fetched_at
	`, doc.ID, string(doc.SourceKind), doc.Origin, doc.Title, doc.ContentHash,
		doc.ChunkCount, doc.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return helpdesk.Errorf(helpdesk.EIO, "upsert document: %s", err)
	}
	return nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*helpdesk.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_kind, origin, title, content_hash, chunk_count, fetched_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, helpdesk.Errorf(helpdesk.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, most recently
// fetched first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_kind, origin, title, content_hash, chunk_count, fetched_at FROM documents WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceKind != nil {
		query.WriteString(" AND source_kind = ?")
		args = append(args, string(*filter.SourceKind))
	}
	if filter.Origin != nil {
		query.WriteString(" AND origin = ?")
		args = append(args, *filter.Origin)
	}

	query.WriteString(" ORDER BY fetched_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, helpdesk.Errorf(helpdesk.EIO, "query documents: %s", err)
	}
	defer rows.Close()

	var docs []*helpdesk.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return helpdesk.Errorf(helpdesk.EIO, "delete document: %s", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return helpdesk.Errorf(helpdesk.ENOTFOUND, "document not found")
	}
	return nil
}

// DeleteAllDocuments empties the catalog.
func (s *DocumentService) DeleteAllDocuments(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return helpdesk.Errorf(helpdesk.EIO, "delete documents: %s", err)
	}
	return nil
}

// scanDocument reads one documents row via the given scan function.
func scanDocument(scan func(dest ...any) error) (*helpdesk.Document, error) {
	var doc helpdesk.Document
	var kind, fetchedAt string

	if err := scan(&doc.ID, &kind, &doc.Origin, &doc.Title, &doc.ContentHash,
		&doc.ChunkCount, &fetchedAt); err != nil {
		return nil, err
	}

	doc.SourceKind = helpdesk.SourceKind(kind)
	t, err := parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	doc.FetchedAt = t
	return &doc, nil
}
