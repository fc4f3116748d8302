package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	main "github.com/DylanNgo1808/AI-Helpdesk/cmd/helpdesk"
	"github.com/DylanNgo1808/AI-Helpdesk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// storeWithRecords returns a mock record store preloaded with two embedded
// chunks from the same document.
func storeWithRecords() *mock.RecordStore {
	return &mock.RecordStore{
		LoadAllFn: func(ctx context.Context) ([]helpdesk.Record, error) {
			return []helpdesk.Record{
				{
					Seq:        1,
					Chunk:      helpdesk.Chunk{ID: "doc-1:0", DocumentID: "doc-1", Text: "Go to settings to cancel."},
					Embedding:  []float32{1, 0},
					SourceKind: helpdesk.SourceWeb,
					Origin:     "https://example.com/billing",
					Title:      "Billing FAQ",
				},
				{
					Seq:        2,
					Chunk:      helpdesk.Chunk{ID: "doc-1:1", DocumentID: "doc-1", Text: "Refunds take five days."},
					Embedding:  []float32{0, 1},
					SourceKind: helpdesk.SourceWeb,
					Origin:     "https://example.com/billing",
					Title:      "Billing FAQ",
				},
			}, nil
		},
	}
}

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers with references", func(t *testing.T) {
		t.Parallel()

		var askedQuestion string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: helpdesk.DefaultConfig(),
			Store:  storeWithRecords(),
			Embedder: &mock.Embedder{
				EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
					return [][]float32{{1, 0}}, nil
				},
			},
			Answerer: &mock.Answerer{
				AnswerFn: func(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
					askedQuestion = question
					return "Open settings and cancel your plan.", nil
				},
			},
		}

		cmd := &main.AskCmd{Question: "How do I cancel?"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "How do I cancel?", askedQuestion)
		assert.Contains(t, stdout.String(), "Open settings and cancel your plan.")
		assert.Contains(t, stdout.String(), "References:")
		assert.Contains(t, stdout.String(), "Billing FAQ")
	})

	t.Run("notes missing context when nothing matches", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: helpdesk.DefaultConfig(),
			Store: &mock.RecordStore{
				LoadAllFn: func(ctx context.Context) ([]helpdesk.Record, error) {
					return nil, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
					return [][]float32{{1, 0}}, nil
				},
			},
			Answerer: &mock.Answerer{
				AnswerFn: func(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
					assert.Empty(t, results)
					return "I don't have documentation on that.", nil
				},
			},
		}

		cmd := &main.AskCmd{Question: "What about invoices?"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "no supporting excerpts")
	})

	t.Run("returns error when store load fails", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Config: helpdesk.DefaultConfig(),
			Store: &mock.RecordStore{
				LoadAllFn: func(ctx context.Context) ([]helpdesk.Record, error) {
					return nil, helpdesk.Errorf(helpdesk.EIO, "disk failure")
				},
			},
		}

		cmd := &main.AskCmd{Question: "anything"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "disk failure")
	})
}

func TestChatCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers questions until exit", func(t *testing.T) {
		t.Parallel()

		var questions []string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdin:  strings.NewReader("How do I cancel?\nexit\n"),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: helpdesk.DefaultConfig(),
			Store:  storeWithRecords(),
			Embedder: &mock.Embedder{
				EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
					return [][]float32{{1, 0}}, nil
				},
			},
			Answerer: &mock.Answerer{
				AnswerFn: func(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
					questions = append(questions, question)
					return "Open settings.", nil
				},
			},
		}

		cmd := &main.ChatCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"How do I cancel?"}, questions)
		assert.Contains(t, stdout.String(), "> ")
		assert.Contains(t, stdout.String(), "Open settings.")
	})

	t.Run("continues after a failed turn", func(t *testing.T) {
		t.Parallel()

		calls := 0
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdin:  strings.NewReader("first question\nsecond question\n"),
			Stdout: stdout,
			Stderr: stderr,
			Config: helpdesk.DefaultConfig(),
			Store:  storeWithRecords(),
			Embedder: &mock.Embedder{
				EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
					return [][]float32{{1, 0}}, nil
				},
			},
			Answerer: &mock.Answerer{
				AnswerFn: func(ctx context.Context, question string, results []helpdesk.SearchResult) (string, error) {
					calls++
					if calls == 1 {
						return "", helpdesk.Errorf(helpdesk.EPROVIDER, "rate limited")
					}
					return "Second answer.", nil
				},
			},
		}

		cmd := &main.ChatCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Contains(t, stderr.String(), "rate limited")
		assert.Contains(t, stdout.String(), "Second answer.")
	})
}

func TestDocsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists ingested documents", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Catalog: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error) {
					return []*helpdesk.Document{
						{ID: "web:1", SourceKind: helpdesk.SourceWeb, Origin: "https://example.com/billing", Title: "Billing FAQ", ChunkCount: 4},
						{ID: "notion:1", SourceKind: helpdesk.SourceNotion, Origin: "export/setup.md", Title: "Setup Guide", ChunkCount: 2},
					}, nil
				},
			},
		}

		cmd := &main.DocsCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Documents (2 total)")
		assert.Contains(t, stdout.String(), "Billing FAQ")
		assert.Contains(t, stdout.String(), "Setup Guide")
		assert.Contains(t, stdout.String(), "4 chunks")
	})

	t.Run("passes kind filter to the catalog", func(t *testing.T) {
		t.Parallel()

		var receivedFilter helpdesk.DocumentFilter
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Catalog: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error) {
					receivedFilter = filter
					return nil, nil
				},
			},
		}

		cmd := &main.DocsCmd{Kind: "notion", Limit: 10}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, receivedFilter.SourceKind)
		assert.Equal(t, helpdesk.SourceNotion, *receivedFilter.SourceKind)
		assert.Equal(t, 10, receivedFilter.Limit)
	})

	t.Run("shows message when catalog is empty", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Catalog: &mock.DocumentService{
				FindDocumentsFn: func(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error) {
					return nil, nil
				},
			},
		}

		cmd := &main.DocsCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No documents")
	})
}

func TestClearCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		cleared := false
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Store: &mock.RecordStore{
				ClearFn: func(ctx context.Context) error {
					cleared = true
					return nil
				},
			},
		}

		cmd := &main.ClearCmd{}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, helpdesk.EINVALID, helpdesk.ErrorCode(err))
		assert.False(t, cleared)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("clears store and catalog with force", func(t *testing.T) {
		t.Parallel()

		storeCleared := false
		catalogCleared := false
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Store: &mock.RecordStore{
				ClearFn: func(ctx context.Context) error {
					storeCleared = true
					return nil
				},
			},
			Catalog: &mock.DocumentService{
				DeleteAllDocumentsFn: func(ctx context.Context) error {
					catalogCleared = true
					return nil
				},
			},
		}

		cmd := &main.ClearCmd{Force: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.True(t, storeCleared)
		assert.True(t, catalogCleared)
		assert.Contains(t, stdout.String(), "cleared")
	})
}

func TestIngestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("ingests a notion export end to end", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "faq.md")
		require.NoError(t, os.WriteFile(path, []byte("# Billing FAQ\n\nHow do I cancel? Go to settings."), 0o600))

		var appended []helpdesk.Record
		store := &mock.RecordStore{
			ReplaceDocumentFn: func(ctx context.Context, documentID string) (int, error) {
				return 0, nil
			},
			AppendFn: func(ctx context.Context, records []helpdesk.Record) error {
				appended = append(appended, records...)
				return nil
			},
		}

		var upserted *helpdesk.Document
		catalog := &mock.DocumentService{
			FindDocumentByIDFn: func(ctx context.Context, id string) (*helpdesk.Document, error) {
				return nil, helpdesk.Errorf(helpdesk.ENOTFOUND, "document not found")
			},
			UpsertDocumentFn: func(ctx context.Context, doc *helpdesk.Document) error {
				upserted = doc
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     testContext(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Config:  helpdesk.DefaultConfig(),
			Store:   store,
			Catalog: catalog,
			Embedder: &mock.Embedder{
				EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
					vectors := make([][]float32, len(texts))
					for i := range texts {
						vectors[i] = []float32{1, 0, 0}
					}
					return vectors, nil
				},
			},
		}

		cmd := &main.IngestCmd{NotionPath: path}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "1 ingested")
		require.NotEmpty(t, appended)
		assert.Equal(t, helpdesk.SourceNotion, appended[0].SourceKind)
		require.NotNil(t, upserted)
		assert.Equal(t, "Billing FAQ", upserted.Title)
		assert.Equal(t, len(appended), upserted.ChunkCount)
	})

	t.Run("returns error when no sources configured", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Config: helpdesk.DefaultConfig(),
		}

		cmd := &main.IngestCmd{}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, helpdesk.EINVALID, helpdesk.ErrorCode(err))
	})
}
