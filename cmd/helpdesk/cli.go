package main

import (
	"context"
	"io"
	"log/slog"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config   helpdesk.Config
	Store    helpdesk.RecordStore
	Catalog  helpdesk.DocumentService
	Embedder helpdesk.Embedder
	Answerer helpdesk.Answerer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	StoreDir string `help:"Knowledge base directory" env:"HELPDESK_STORE"`
	Config   string `short:"c" help:"Path to ingestion config JSON"`
	Provider string `default:"openai" enum:"openai,gemini" help:"Chat provider for answer generation"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`

	Ingest IngestCmd `cmd:"" help:"Crawl and embed the configured knowledge sources"`
	Ask    AskCmd    `cmd:"" help:"Ask a one-shot question against the knowledge base"`
	Chat   ChatCmd   `cmd:"" help:"Interactive question loop"`
	Docs   DocsCmd   `cmd:"" help:"List ingested documents"`
	Clear  ClearCmd  `cmd:"" help:"Drop all records and the document catalog"`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP question-answering API"`
}
