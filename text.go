package helpdesk

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// NormalizeText collapses all runs of whitespace in s into single spaces and
// trims leading and trailing whitespace. Sources normalize document content
// before it is chunked so that offsets are stable across ingestions.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NewDocumentID derives a stable document ID from the source kind and origin.
// The same origin always maps to the same ID, so re-ingesting a source
// replaces its previous records.
func NewDocumentID(kind SourceKind, origin string) string {
	return fmt.Sprintf("%s:%x", kind, xxhash.Sum64String(origin))
}

// HashContent computes the xxHash of content as a hex string, used to detect
// unchanged documents on re-ingestion.
func HashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}
