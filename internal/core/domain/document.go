package domain

// PurposeUnknown is used when a source does not declare a purpose tag.
const PurposeUnknown = "unknown"

// Document represents one processed source text within a load run.
// A fresh row is inserted per input file on every run; documents are
// never mutated after insert and are destroyed when the store is rebuilt.
type Document struct {
	// ID is the store-generated identifier (0 until inserted).
	ID int64

	// Source is the stable name of the ingestion source.
	Source string

	// Purpose is the classification tag for the source.
	Purpose string

	// RawFilename is the name of the raw file the text came from.
	RawFilename string

	// FullTextLength is the character length of the cleaned text.
	FullTextLength int

	// ProcessedAt is the upstream cleaning timestamp (RFC 3339),
	// carried through from the transform stage as-is.
	ProcessedAt string
}

// Chunk is a bounded segment of a document's text. It is the unit of
// embedding: each chunk produces exactly one vector in the index.
type Chunk struct {
	// ID is the store-generated identifier (0 until inserted).
	ID int64

	// DocID references the owning document. A chunk cannot outlive
	// its document.
	DocID int64

	// Index is the 0-based, contiguous position in emission order.
	Index int

	// Text is the trimmed chunk text.
	Text string

	// Length is the character length of Text after trimming.
	Length int

	// CharOffset is the start offset into the original document text,
	// pre-trim. Strictly increasing across a document's chunks.
	CharOffset int
}

// ChunkConfig holds the chunking parameters echoed into chunked output
// files so downstream stages can see how segments were produced.
type ChunkConfig struct {
	ChunkSize    int `json:"chunk_size"`
	ChunkOverlap int `json:"chunk_overlap"`
	MinChunkSize int `json:"min_chunk_size"`
}

// IndexEntry maps one vector index row back to relational provenance.
// Entry i of the persisted metadata list describes row i of the index;
// this positional correspondence is the only linkage between the two.
type IndexEntry struct {
	ChunkID    int64  `json:"chunk_id"`
	DocID      int64  `json:"doc_id"`
	ChunkIndex int    `json:"chunk_index"`
	Source     string `json:"source"`
	Purpose    string `json:"purpose"`
}

// ProcessedDocument is the transform-stage output shape: cleaned text
// plus the metadata the load stage needs.
type ProcessedDocument struct {
	Source      string
	Purpose     string
	RawFilename string
	ProcessedAt string
	TextLength  int
	Text        string
}

// ChunkedDocument is the chunk-stage output shape: document metadata
// plus the ordered chunk list, ready for embedding and persistence.
type ChunkedDocument struct {
	Source         string
	Purpose        string
	RawFilename    string
	ProcessedAt    string
	FullTextLength int
	ChunkConfig    ChunkConfig
	Chunks         []Chunk
}
