package helpdesk

import "fmt"

// Chunk represents a contiguous slice of a document's normalized text, the
// unit of embedding and retrieval. Offsets are rune offsets into the source
// text, so the mapping back to the document is exact: concatenating a
// document's chunks in order, dropping each chunk's Overlap-rune prefix,
// reconstructs the original text.
type Chunk struct {
	ID          string `json:"id"`
	DocumentID  string `json:"documentId"`
	Text        string `json:"text"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	Overlap     int    `json:"overlap"` // runes shared with the previous chunk
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "chunk document ID required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	if c.EndOffset <= c.StartOffset {
		return Errorf(EINVALID, "chunk offsets invalid: [%d, %d)", c.StartOffset, c.EndOffset)
	}
	return nil
}

// ValidateChunking returns an error if the chunk size/overlap combination is
// invalid. Overlap zero is allowed; overlap must be smaller than the size.
func ValidateChunking(chunkSize, chunkOverlap int) error {
	if chunkSize <= 0 {
		return Errorf(EINVALID, "chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return Errorf(EINVALID, "chunk overlap must be in [0, %d), got %d", chunkSize, chunkOverlap)
	}
	return nil
}

// ChunkDocument splits a document's normalized text into overlapping chunks
// using a sliding rune window of length chunkSize and stride
// chunkSize-chunkOverlap. The final chunk may be shorter but is never empty;
// empty text yields no chunks. Chunk IDs are the document ID plus the chunk's
// sequence index.
//
// The function is pure and deterministic given the same inputs.
func ChunkDocument(doc *Document, chunkSize, chunkOverlap int) ([]Chunk, error) {
	if err := ValidateChunking(chunkSize, chunkOverlap); err != nil {
		return nil, err
	}
	if doc.ID == "" {
		return nil, Errorf(EINVALID, "document ID required")
	}

	runes := []rune(doc.Content)
	if len(runes) == 0 {
		return nil, nil
	}

	stride := chunkSize - chunkOverlap
	var chunks []Chunk
	for start := 0; start < len(runes); start += stride {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		overlap := 0
		if start > 0 {
			overlap = chunkOverlap
		}
		chunks = append(chunks, Chunk{
			ID:          fmt.Sprintf("%s:%d", doc.ID, len(chunks)),
			DocumentID:  doc.ID,
			Text:        string(runes[start:end]),
			StartOffset: start,
			EndOffset:   end,
			Overlap:     overlap,
		})
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
