package helpdesk

import (
	"encoding/json"
	"io"
	"net/url"
	"time"
)

// Default ingestion and retrieval settings, matching the chunking scheme the
// store was designed around.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
	DefaultTopK         = 5
	DefaultMaxPages     = 50
	DefaultCrawlDelay   = 500 * time.Millisecond
)

// Config describes the ingestion sources and retrieval tuning for a helpdesk
// knowledge base. It is loaded from a JSON file; unknown fields and invalid
// combinations are rejected at load time, not at point of use.
type Config struct {
	ChunkSize    int     `json:"chunkSize"`
	ChunkOverlap int     `json:"chunkOverlap"`
	TopK         int     `json:"topK"`
	MinScore     float32 `json:"minScore"`

	Web    []WebSource    `json:"web"`
	Notion []NotionSource `json:"notion"`
}

// WebSource configures crawling of one website.
type WebSource struct {
	URL          string   `json:"url"`
	MaxPages     int      `json:"maxPages"`
	DelayMillis  int      `json:"delayMillis"`
	AllowedPaths []string `json:"allowedPaths"`
}

// Delay returns the configured inter-request delay, or the default.
func (s WebSource) Delay() time.Duration {
	if s.DelayMillis <= 0 {
		return DefaultCrawlDelay
	}
	return time.Duration(s.DelayMillis) * time.Millisecond
}

// NotionSource configures ingestion of a Notion export file or directory.
type NotionSource struct {
	Path string `json:"path"`
	ID   string `json:"id"`
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if err := ValidateChunking(c.ChunkSize, c.ChunkOverlap); err != nil {
		return err
	}
	if c.TopK <= 0 {
		return Errorf(EINVALID, "topK must be positive, got %d", c.TopK)
	}
	if c.MinScore < -1 || c.MinScore > 1 {
		return Errorf(EINVALID, "minScore must be in [-1, 1], got %g", c.MinScore)
	}
	for _, w := range c.Web {
		if w.URL == "" {
			return Errorf(EINVALID, "web source URL required")
		}
		if u, err := url.Parse(w.URL); err != nil || u.Scheme == "" || u.Host == "" {
			return Errorf(EINVALID, "web source URL %q invalid", w.URL)
		}
		if w.MaxPages < 0 {
			return Errorf(EINVALID, "web source maxPages must not be negative, got %d", w.MaxPages)
		}
	}
	for _, n := range c.Notion {
		if n.Path == "" {
			return Errorf(EINVALID, "notion source path required")
		}
	}
	return nil
}

// DefaultConfig returns a configuration with default tuning and no sources.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		TopK:         DefaultTopK,
	}
}

// ParseConfig reads a JSON configuration, applying defaults for omitted
// tuning fields. Unknown fields are rejected with EINVALID.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, Errorf(EINVALID, "parse config: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
