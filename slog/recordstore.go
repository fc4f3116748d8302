// Package slog provides logging decorators for helpdesk services.
package slog

import (
	"context"
	"log/slog"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// Compile-time interface verification.
var _ helpdesk.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore with operation logging.
type LoggingRecordStore struct {
	next   helpdesk.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next helpdesk.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// Append delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) Append(ctx context.Context, records []helpdesk.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record store append",
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Append(ctx, records)
}

// LoadAll delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) LoadAll(ctx context.Context) (records []helpdesk.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Info("record store load",
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadAll(ctx)
}

// ReplaceDocument delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) ReplaceDocument(ctx context.Context, documentID string) (removed int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("record store replace document",
			"document", documentID,
			"removed", removed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceDocument(ctx, documentID)
}

// Clear delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) Clear(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record store clear",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Clear(ctx)
}

// Dimension delegates to the wrapped store.
func (s *LoggingRecordStore) Dimension(ctx context.Context) (int, error) {
	return s.next.Dimension(ctx)
}
