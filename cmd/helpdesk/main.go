package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/DylanNgo1808/AI-Helpdesk/fs"
	"github.com/DylanNgo1808/AI-Helpdesk/gemini"
	hdopenai "github.com/DylanNgo1808/AI-Helpdesk/openai"
	hdslog "github.com/DylanNgo1808/AI-Helpdesk/slog"
	"github.com/DylanNgo1808/AI-Helpdesk/sqlite"
	"github.com/alecthomas/kong"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Knowledge base directory. Set before calling Run().
	StoreDir string

	// SQLite database backing the document catalog.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	Store   helpdesk.RecordStore
	Catalog helpdesk.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		StoreDir: defaultStoreDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("helpdesk"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'helpdesk --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.StoreDir != "" {
		m.StoreDir = cli.StoreDir
	}

	deps.Config, err = loadConfig(cli.Config)
	if err != nil {
		return err
	}

	// Open the record store and the document catalog.
	store := fs.NewRecordStore(m.StoreDir)
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open record store at %q: %w", m.StoreDir, err)
	}
	m.Store = store

	m.DB = sqlite.NewDB(filepath.Join(m.StoreDir, "catalog.db"))
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open document catalog at %q: %w", m.StoreDir, err)
	}
	defer m.Close()
	m.Catalog = sqlite.NewDocumentService(m.DB)

	deps.Store = m.Store
	deps.Catalog = m.Catalog
	if cli.Verbose {
		deps.Store = hdslog.NewLoggingRecordStore(deps.Store, deps.Logger)
	}

	// Provider clients are only constructed for commands that need them.
	if needsProviders(cmd) {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("OPENAI_API_KEY not set. Embeddings require an OpenAI API key")
		}
		client := openai.NewClient(option.WithAPIKey(apiKey))
		deps.Embedder = hdopenai.NewEmbedder(client, "")
		if cli.Verbose {
			deps.Embedder = hdslog.NewLoggingEmbedder(deps.Embedder, deps.Logger)
		}

		switch cli.Provider {
		case "gemini":
			geminiKey := os.Getenv("GEMINI_API_KEY")
			if geminiKey == "" {
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}
			geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  geminiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			deps.Answerer = gemini.NewAnswerer(geminiClient, "")
		default:
			deps.Answerer = hdopenai.NewAnswerer(client, "")
		}
	}

	return kongCtx.Run(deps)
}

// needsProviders reports whether a command talks to the embedding or chat
// providers.
func needsProviders(cmd string) bool {
	switch cmd {
	case "ingest", "ask", "chat", "serve":
		return true
	}
	return false
}

// loadConfig reads the ingestion config, or returns defaults when no path is
// given.
func loadConfig(path string) (helpdesk.Config, error) {
	if path == "" {
		return helpdesk.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return helpdesk.Config{}, fmt.Errorf("failed to open config %q: %w", path, err)
	}
	defer f.Close()
	return helpdesk.ParseConfig(f)
}

func defaultStoreDir() string {
	if dir := os.Getenv("HELPDESK_STORE"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".helpdesk"
	}
	return filepath.Join(home, ".helpdesk")
}
