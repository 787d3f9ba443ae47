// Package file reads processed and chunked document records from JSON
// files on disk, one file per source.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// processedFile is the on-disk shape written by the transform stage.
type processedFile struct {
	Text     string `json:"text"`
	Metadata struct {
		Source      string `json:"source"`
		Purpose     string `json:"purpose"`
		RawFilename string `json:"raw_filename"`
		ProcessedAt string `json:"processed_at"`
		TextLength  int    `json:"text_length"`
	} `json:"metadata"`
}

// chunkedFile is the on-disk shape written by the chunk stage.
type chunkedFile struct {
	Source         string             `json:"source"`
	Purpose        string             `json:"purpose"`
	RawFilename    string             `json:"raw_filename"`
	ProcessedAt    string             `json:"processed_at"`
	FullTextLength int                `json:"full_text_length"`
	ChunkConfig    domain.ChunkConfig `json:"chunk_config"`
	Chunks         []chunkRecord      `json:"chunks"`
}

type chunkRecord struct {
	ChunkIndex  int    `json:"chunk_index"`
	Text        string `json:"text"`
	CharOffset  int    `json:"char_offset"`
	ChunkLength int    `json:"chunk_length"`
}

// Source reads document records from a processed and a chunked
// directory. Missing directories are treated as empty, not as errors.
type Source struct {
	processedDir string
	chunkedDir   string
}

// New creates a document source over the given directories.
func New(processedDir, chunkedDir string) *Source {
	return &Source{
		processedDir: processedDir,
		chunkedDir:   chunkedDir,
	}
}

// LoadProcessed reads all processed documents. Files that cannot be
// decoded or miss required metadata are returned by name in skipped.
func (s *Source) LoadProcessed(ctx context.Context) ([]domain.ProcessedDocument, []string, error) {
	paths, err := listJSON(s.processedDir)
	if err != nil {
		return nil, nil, err
	}

	var docs []domain.ProcessedDocument
	var skipped []string
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		doc, err := readProcessed(path)
		if err != nil {
			skipped = append(skipped, filepath.Base(path))
			continue
		}
		docs = append(docs, doc)
	}

	return docs, skipped, nil
}

// LoadChunked reads all chunked documents. Files that cannot be decoded
// or miss required metadata are returned by name in skipped.
func (s *Source) LoadChunked(ctx context.Context) ([]domain.ChunkedDocument, []string, error) {
	paths, err := listJSON(s.chunkedDir)
	if err != nil {
		return nil, nil, err
	}

	var docs []domain.ChunkedDocument
	var skipped []string
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		doc, err := readChunked(path)
		if err != nil {
			skipped = append(skipped, filepath.Base(path))
			continue
		}
		docs = append(docs, doc)
	}

	return docs, skipped, nil
}

// listJSON returns the sorted JSON file paths in a directory.
func listJSON(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return paths, nil
}

func readProcessed(path string) (domain.ProcessedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ProcessedDocument{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var file processedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return domain.ProcessedDocument{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	meta := file.Metadata
	if file.Text == "" || meta.Source == "" || meta.RawFilename == "" || meta.ProcessedAt == "" {
		return domain.ProcessedDocument{}, fmt.Errorf("%s: %w: missing required field", path, domain.ErrInvalidInput)
	}

	textLength := meta.TextLength
	if textLength == 0 {
		textLength = len([]rune(file.Text))
	}

	return domain.ProcessedDocument{
		Source:      meta.Source,
		Purpose:     defaultPurpose(meta.Purpose),
		RawFilename: meta.RawFilename,
		ProcessedAt: meta.ProcessedAt,
		TextLength:  textLength,
		Text:        file.Text,
	}, nil
}

func readChunked(path string) (domain.ChunkedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ChunkedDocument{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var file chunkedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return domain.ChunkedDocument{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	if file.Source == "" || file.RawFilename == "" || file.ProcessedAt == "" {
		return domain.ChunkedDocument{}, fmt.Errorf("%s: %w: missing required field", path, domain.ErrInvalidInput)
	}

	chunks := make([]domain.Chunk, 0, len(file.Chunks))
	for _, c := range file.Chunks {
		chunks = append(chunks, domain.Chunk{
			Index:      c.ChunkIndex,
			Text:       c.Text,
			Length:     c.ChunkLength,
			CharOffset: c.CharOffset,
		})
	}

	return domain.ChunkedDocument{
		Source:         file.Source,
		Purpose:        defaultPurpose(file.Purpose),
		RawFilename:    file.RawFilename,
		ProcessedAt:    file.ProcessedAt,
		FullTextLength: file.FullTextLength,
		ChunkConfig:    file.ChunkConfig,
		Chunks:         chunks,
	}, nil
}

func defaultPurpose(purpose string) string {
	if purpose == "" {
		return domain.PurposeUnknown
	}
	return purpose
}
