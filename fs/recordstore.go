// Package fs provides the file-based vector record store. Records are
// persisted as one self-describing JSON object per line, so appends are a
// single write to an append-only file and loads stream the file without
// holding more than one line in memory at a time.
package fs

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// recordsFile is the record file name under the store root.
const recordsFile = "records.jsonl"

// Compile-time interface verification.
var _ helpdesk.RecordStore = (*RecordStore)(nil)

// RecordStore implements helpdesk.RecordStore on top of a single JSONL file
// under a storage root directory. Writes (Append, ReplaceDocument, Clear) are
// serialized; loads may run concurrently with each other.
//
// ReplaceDocument rewrites the file through a temporary file and an atomic
// rename, so a concurrent LoadAll sees either the pre- or post-replace state,
// never a mix.
type RecordStore struct {
	mu      sync.RWMutex
	dir     string
	dim     int   // established vector dimensionality, 0 until first append
	nextSeq int64 // next store-level sequence number to assign
}

// NewRecordStore creates a RecordStore rooted at dir. Call Open before use.
func NewRecordStore(dir string) *RecordStore {
	return &RecordStore{dir: dir, nextSeq: 1}
}

// path returns the record file path.
func (s *RecordStore) path() string {
	return filepath.Join(s.dir, recordsFile)
}

// Open creates the storage root if needed and recovers the store's
// dimensionality and sequence counter from the existing record file.
// Returns ECORRUPT if the existing file is malformed.
func (s *RecordStore) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return helpdesk.Errorf(helpdesk.EIO, "create store root %q: %s", s.dir, err)
	}

	records, err := s.readAll()
	if err != nil {
		return err
	}
	for _, r := range records {
		if s.dim == 0 {
			s.dim = len(r.Embedding)
		}
		if r.Seq >= s.nextSeq {
			s.nextSeq = r.Seq + 1
		}
	}
	return nil
}

// Append writes new records to the store. Sequence numbers are assigned by
// the store in input order. The write is all-or-nothing for the batch: every
// record is validated, and its vector checked against the store's
// dimensionality, before anything touches disk.
func (s *RecordStore) Append(ctx context.Context, records []helpdesk.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dim := s.dim
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return err
		}
		if dim == 0 {
			dim = len(records[i].Embedding)
		} else if len(records[i].Embedding) != dim {
			return helpdesk.Errorf(helpdesk.EDIMENSION,
				"record %q has vector of length %d, store dimensionality is %d",
				records[i].Chunk.ID, len(records[i].Embedding), dim)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	seq := s.nextSeq
	for i := range records {
		records[i].Seq = seq
		seq++
		if err := enc.Encode(records[i]); err != nil {
			return helpdesk.Errorf(helpdesk.EINTERNAL, "encode record %q: %s", records[i].Chunk.ID, err)
		}
	}

	f, err := os.OpenFile(s.path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return helpdesk.Errorf(helpdesk.EIO, "open record file: %s", err)
	}
	defer f.Close()

	prev, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return helpdesk.Errorf(helpdesk.EIO, "seek record file: %s", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		// Roll back a partial write so the store stays readable.
		_ = f.Truncate(prev)
		return helpdesk.Errorf(helpdesk.EIO, "append records: %s", err)
	}
	if err := f.Sync(); err != nil {
		return helpdesk.Errorf(helpdesk.EIO, "sync record file: %s", err)
	}

	s.dim = dim
	s.nextSeq = seq
	return nil
}

// LoadAll reads the entire store into memory in insertion order. On a
// malformed record it returns the records read so far alongside an ECORRUPT
// error, never a silently truncated result.
func (s *RecordStore) LoadAll(ctx context.Context) ([]helpdesk.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readAll()
}

// readAll streams the record file. Callers must hold at least a read lock.
func (s *RecordStore) readAll() ([]helpdesk.Record, error) {
	f, err := os.Open(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, helpdesk.Errorf(helpdesk.EIO, "open record file: %s", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var records []helpdesk.Record
	dim := 0
	line := 0
	for scanner.Scan() {
		line++
		var r helpdesk.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return records, helpdesk.Errorf(helpdesk.ECORRUPT, "record file line %d: %s", line, err)
		}
		if err := r.Validate(); err != nil {
			return records, helpdesk.Errorf(helpdesk.ECORRUPT, "record file line %d: %s", line, helpdesk.ErrorMessage(err))
		}
		if dim == 0 {
			dim = len(r.Embedding)
		} else if len(r.Embedding) != dim {
			return records, helpdesk.Errorf(helpdesk.ECORRUPT,
				"record file line %d: vector length %d disagrees with store dimensionality %d",
				line, len(r.Embedding), dim)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return records, helpdesk.Errorf(helpdesk.EIO, "read record file: %s", err)
	}
	return records, nil
}

// ReplaceDocument removes all records belonging to documentID and returns
// the number removed. The surviving records keep their sequence numbers and
// order; the rewrite goes through a temporary file and an atomic rename.
func (s *RecordStore) ReplaceDocument(ctx context.Context, documentID string) (int, error) {
	if documentID == "" {
		return 0, helpdesk.Errorf(helpdesk.EINVALID, "document ID required")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return 0, err
	}

	kept := records[:0]
	for _, r := range records {
		if r.Chunk.DocumentID != documentID {
			kept = append(kept, r)
		}
	}
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.rewrite(kept); err != nil {
		return 0, err
	}

	if len(kept) == 0 {
		s.dim = 0
	}
	return removed, nil
}

// rewrite replaces the record file with the given records atomically.
// Callers must hold the write lock.
func (s *RecordStore) rewrite(records []helpdesk.Record) error {
	tmp := s.path() + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return helpdesk.Errorf(helpdesk.EIO, "create temp record file: %s", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range records {
		if err := enc.Encode(records[i]); err != nil {
			f.Close()
			_ = os.Remove(tmp)
			return helpdesk.Errorf(helpdesk.EINTERNAL, "encode record %q: %s", records[i].Chunk.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return helpdesk.Errorf(helpdesk.EIO, "write temp record file: %s", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return helpdesk.Errorf(helpdesk.EIO, "sync temp record file: %s", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return helpdesk.Errorf(helpdesk.EIO, "close temp record file: %s", err)
	}

	if err := os.Rename(tmp, s.path()); err != nil {
		_ = os.Remove(tmp)
		return helpdesk.Errorf(helpdesk.EIO, "replace record file: %s", err)
	}
	return nil
}

// Clear drops all records. Deleting the storage root out of band is
// equivalent.
func (s *RecordStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return helpdesk.Errorf(helpdesk.EIO, "remove record file: %s", err)
	}
	s.dim = 0
	s.nextSeq = 1
	return nil
}

// Dimension returns the store's established vector dimensionality, or 0 if
// the store holds no records.
func (s *RecordStore) Dimension(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim, nil
}
