// Package chunker provides a word-respecting sliding-window text chunker.
package chunker

import (
	"strings"
	"unicode"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

// DefaultChunkSize is the default window width in characters.
const DefaultChunkSize = 400

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 80

// DefaultMinChunkSize is the default minimum trimmed chunk length.
// Shorter segments are dropped.
const DefaultMinChunkSize = 50

// Processor splits document text into bounded, overlapping chunks.
// Window ends snap back to the last whitespace so no word is cut.
type Processor struct {
	chunkSize    int
	overlap      int
	minChunkSize int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the window width in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithMinChunkSize sets the minimum trimmed chunk length.
func WithMinChunkSize(size int) Option {
	return func(p *Processor) {
		if size >= 0 {
			p.minChunkSize = size
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:    DefaultChunkSize,
		overlap:      DefaultChunkOverlap,
		minChunkSize: DefaultMinChunkSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Config returns the active chunking parameters.
func (p *Processor) Config() domain.ChunkConfig {
	return domain.ChunkConfig{
		ChunkSize:    p.chunkSize,
		ChunkOverlap: p.overlap,
		MinChunkSize: p.minChunkSize,
	}
}

// Chunk splits text into ordered chunks with character offsets.
//
// Offsets count runes, matching the character-based window. Chunk
// indices are contiguous from 0 in emission order; segments whose
// trimmed length falls below the minimum are dropped without consuming
// an index slot. CharOffset is strictly increasing, which also bounds
// the loop: the step floor of 1 is the termination guarantee when a
// misconfigured overlap meets or exceeds the window content.
func (p *Processor) Chunk(text string) []domain.Chunk {
	runes := []rune(text)
	total := len(runes)

	// Short text: one chunk or nothing.
	if total <= p.chunkSize {
		if total >= p.minChunkSize {
			return []domain.Chunk{{
				Index:      0,
				Text:       text,
				Length:     total,
				CharOffset: 0,
			}}
		}
		return nil
	}

	var chunks []domain.Chunk
	start := 0

	for start < total {
		end := start + p.chunkSize

		if end >= total {
			// Last chunk: take everything remaining.
			if c, ok := p.emit(runes[start:], start, len(chunks)); ok {
				chunks = append(chunks, c)
			}
			break
		}

		// Snap back to the last whitespace to avoid cutting mid-word.
		boundary := end
		for boundary > start && !unicode.IsSpace(runes[boundary]) {
			boundary--
		}

		// One unbroken run of non-space characters: hard cut.
		if boundary == start {
			boundary = end
		}

		if c, ok := p.emit(runes[start:boundary], start, len(chunks)); ok {
			chunks = append(chunks, c)
		}

		step := boundary - start - p.overlap
		if step <= 0 {
			step = 1
		}
		start += step
	}

	return chunks
}

// emit trims a candidate segment and builds a chunk from it.
// Returns false when the trimmed text is below the minimum size.
func (p *Processor) emit(segment []rune, offset, index int) (domain.Chunk, bool) {
	trimmed := strings.TrimSpace(string(segment))
	length := len([]rune(trimmed))
	if length < p.minChunkSize {
		return domain.Chunk{}, false
	}

	return domain.Chunk{
		Index:      index,
		Text:       trimmed,
		Length:     length,
		CharOffset: offset,
	}, true
}
