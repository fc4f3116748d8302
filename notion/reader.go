// Package notion ingests Notion workspace exports from the local filesystem.
// An export is a single markdown or text file, or a directory of them.
package notion

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// Compile-time interface verification.
var _ helpdesk.Source = (*Reader)(nil)

// Reader yields one document per exported file. Document IDs derive from the
// file's origin path, so re-reading the same export updates documents in
// place instead of duplicating them.
type Reader struct {
	Source helpdesk.NotionSource
}

// Documents reads the configured export path and returns its documents.
// Files are visited in lexical path order. Only .md and .txt files are
// considered; empty files are skipped.
func (r *Reader) Documents(ctx context.Context) ([]*helpdesk.Document, error) {
	info, err := os.Stat(r.Source.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, helpdesk.Errorf(helpdesk.ENOTFOUND, "notion export %q not found", r.Source.Path)
		}
		return nil, helpdesk.Errorf(helpdesk.EIO, "stat %s: %s", r.Source.Path, err)
	}

	var paths []string
	if info.IsDir() {
		err := filepath.WalkDir(r.Source.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isExportFile(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, helpdesk.Errorf(helpdesk.EIO, "walk %s: %s", r.Source.Path, err)
		}
		sort.Strings(paths)
	} else {
		if !isExportFile(r.Source.Path) {
			return nil, helpdesk.Errorf(helpdesk.EINVALID, "notion export %q is not a .md or .txt file", r.Source.Path)
		}
		paths = []string{r.Source.Path}
	}

	docs := make([]*helpdesk.Document, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := r.readFile(path, info.IsDir())
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// readFile builds a document from one exported file. Empty files yield nil.
func (r *Reader) readFile(path string, fromDir bool) (*helpdesk.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, helpdesk.Errorf(helpdesk.EIO, "read %s: %s", path, err)
	}

	content := helpdesk.NormalizeText(string(raw))
	if content == "" {
		return nil, nil
	}

	origin := r.origin(path, fromDir)
	title := exportTitle(string(raw))
	if title == "" {
		title = fileStem(path)
	}

	return &helpdesk.Document{
		ID:          helpdesk.NewDocumentID(helpdesk.SourceNotion, origin),
		SourceKind:  helpdesk.SourceNotion,
		Origin:      origin,
		Title:       title,
		Content:     content,
		ContentHash: helpdesk.HashContent(content),
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// origin produces a stable identifier for a file. When the source has an
// explicit ID it replaces the configured path, so documents keep their
// identity if the export moves on disk.
func (r *Reader) origin(path string, fromDir bool) string {
	if r.Source.ID == "" {
		return filepath.ToSlash(path)
	}
	if !fromDir {
		return r.Source.ID
	}
	rel, err := filepath.Rel(r.Source.Path, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return r.Source.ID + "/" + filepath.ToSlash(rel)
}

// exportTitle returns the first markdown heading, if any. Notion exports
// start each page with an H1 of the page title.
func exportTitle(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
		return ""
	}
	return ""
}

func fileStem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func isExportFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".txt":
		return true
	}
	return false
}
