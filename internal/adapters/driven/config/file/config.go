// Package file loads the pipeline configuration from a TOML file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	htmlnorm "github.com/acadia-labs/acadia-cli/internal/normalisers/html"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "config/config.toml"

// SourceConfig describes one ingestion source.
type SourceConfig struct {
	Name    string `toml:"name"`
	URL     string `toml:"url"`
	Purpose string `toml:"purpose"`
	Enabled bool   `toml:"enabled"`
}

// TransformConfig holds HTML-to-text settings.
type TransformConfig struct {
	MinTextLength int      `toml:"min_text_length"`
	StripTags     []string `toml:"strip_tags"`
}

// ChunkingConfig holds the chunker parameters, in characters.
type ChunkingConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
	MinChunkSize int `toml:"min_chunk_size"`
}

// EmbeddingConfig holds embedding service settings.
type EmbeddingConfig struct {
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	APIKeyEnv string `toml:"api_key_env"`
	BatchSize int    `toml:"batch_size"`
	Dimension int    `toml:"dimension"`
}

// VectorDBConfig holds vector index settings.
type VectorDBConfig struct {
	// IndexPath is where the similarity index is persisted; the
	// metadata list goes to a sibling file.
	IndexPath string `toml:"index_path"`
}

// MonitoringConfig holds logging settings.
type MonitoringConfig struct {
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// Config is the full pipeline configuration.
type Config struct {
	DataDir    string           `toml:"data_dir"`
	Sources    []SourceConfig   `toml:"sources"`
	Transform  TransformConfig  `toml:"transform"`
	Chunking   ChunkingConfig   `toml:"chunking"`
	Embedding  EmbeddingConfig  `toml:"embedding"`
	VectorDB   VectorDBConfig   `toml:"vector_db"`
	Monitoring MonitoringConfig `toml:"monitoring"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Transform: TransformConfig{
			MinTextLength: 500,
			StripTags:     htmlnorm.DefaultStripTags,
		},
		Chunking: ChunkingConfig{
			ChunkSize:    400,
			ChunkOverlap: 80,
			MinChunkSize: 50,
		},
		Embedding: EmbeddingConfig{
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			BatchSize: 32,
		},
		VectorDB: VectorDBConfig{
			IndexPath: filepath.Join("data", "embeddings", "index.bin"),
		},
		Monitoring: MonitoringConfig{
			LogLevel: "info",
			LogFile:  filepath.Join("logs", "pipeline.log"),
		},
	}
}

// Load reads the configuration at path, overlaying the defaults.
// An empty path falls back to DefaultPath; a missing file at the
// default location yields the defaults, while an explicitly named
// missing file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("chunking.chunk_size must be positive")
	}
	if c.Chunking.ChunkOverlap < 0 {
		return fmt.Errorf("chunking.chunk_overlap must not be negative")
	}
	if c.Chunking.MinChunkSize < 0 {
		return fmt.Errorf("chunking.min_chunk_size must not be negative")
	}
	if c.Embedding.BatchSize <= 0 {
		return fmt.Errorf("embedding.batch_size must be positive")
	}
	return nil
}

// RawDir is where fetched pages are stored.
func (c *Config) RawDir() string {
	return filepath.Join(c.DataDir, "raw")
}

// ProcessedDir is where cleaned document records are stored.
func (c *Config) ProcessedDir() string {
	return filepath.Join(c.DataDir, "processed")
}

// ChunkedDir is where chunked document records are stored.
func (c *Config) ChunkedDir() string {
	return filepath.Join(c.DataDir, "chunked")
}

// DatabasePath is the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "acadia.db")
}

// IndexPath is the vector index location.
func (c *Config) IndexPath() string {
	if c.VectorDB.IndexPath != "" {
		return c.VectorDB.IndexPath
	}
	return filepath.Join(c.DataDir, "embeddings", "index.bin")
}

// APIKey resolves the embedding API key from the configured
// environment variable.
func (c *Config) APIKey() string {
	if c.Embedding.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Embedding.APIKeyEnv)
}
