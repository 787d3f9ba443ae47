// Package flat implements an exhaustive inner-product vector index
// persisted to disk alongside an ordered metadata list.
//
// Rows are L2-normalised on insertion so inner product equals cosine
// similarity. Row i of the index corresponds to entry i of the metadata
// list; that positional parity is the only linkage back to the
// relational record and is asserted before anything is written.
package flat

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
)

// MetadataFilename is the name of the metadata list persisted next to
// the index file.
const MetadataFilename = "metadata.json"

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// indexFile is the on-disk gob representation of the index.
type indexFile struct {
	Dim     int
	Vectors [][]float32
}

// Index is a flat inner-product index accumulated in memory and
// persisted in one shot at the end of a load run.
type Index struct {
	dim       int
	indexPath string
	vectors   [][]float32
}

// New creates an empty index of the given dimension that will persist
// to indexPath (metadata goes to a sibling file).
func New(dim int, indexPath string) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("flat: dimension must be positive, got %d", dim)
	}
	if indexPath == "" {
		return nil, fmt.Errorf("flat: index path is required")
	}

	return &Index{
		dim:       dim,
		indexPath: indexPath,
	}, nil
}

// MetadataPath returns the metadata file path for a given index path.
func MetadataPath(indexPath string) string {
	return filepath.Join(filepath.Dir(indexPath), MetadataFilename)
}

// Dimensions returns the configured vector dimension.
func (i *Index) Dimensions() int {
	return i.dim
}

// Count returns the number of rows added so far.
func (i *Index) Count() int {
	return len(i.vectors)
}

// Add appends one vector as the next row, L2-normalising it in place.
// A zero vector (embedding fallback) is kept as-is: it contributes zero
// similarity but must still occupy its row.
func (i *Index) Add(embedding []float32) error {
	if len(embedding) != i.dim {
		return fmt.Errorf("flat: row %d has dimension %d, want %d: %w",
			len(i.vectors), len(embedding), i.dim, domain.ErrDimensionMismatch)
	}

	row := make([]float32, i.dim)
	copy(row, embedding)
	normalise(row)

	i.vectors = append(i.vectors, row)
	return nil
}

// Persist writes the index and the ordered metadata list, overwriting
// any previous run's artifacts. Both files are written to a temp path
// and renamed so a crash mid-write never leaves a half-written pair
// being served.
func (i *Index) Persist(entries []domain.IndexEntry) error {
	if len(entries) != len(i.vectors) {
		return fmt.Errorf("flat: %d vectors but %d metadata entries: %w",
			len(i.vectors), len(entries), domain.ErrIndexMisaligned)
	}

	if err := os.MkdirAll(filepath.Dir(i.indexPath), 0o700); err != nil {
		return fmt.Errorf("flat: creating index directory: %w", err)
	}

	if err := writeAtomic(i.indexPath, func(f *os.File) error {
		return gob.NewEncoder(f).Encode(indexFile{Dim: i.dim, Vectors: i.vectors})
	}); err != nil {
		return fmt.Errorf("flat: writing index: %w", err)
	}

	if err := writeAtomic(MetadataPath(i.indexPath), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}); err != nil {
		return fmt.Errorf("flat: writing metadata: %w", err)
	}

	return nil
}

// Open reads a persisted index back from disk.
func Open(indexPath string) (*Index, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("flat: opening index: %w", err)
	}
	defer f.Close()

	var file indexFile
	if err := gob.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("flat: decoding index: %w", err)
	}

	return &Index{
		dim:       file.Dim,
		indexPath: indexPath,
		vectors:   file.Vectors,
	}, nil
}

// ReadMetadata reads the persisted metadata list for an index path,
// in row order.
func ReadMetadata(indexPath string) ([]domain.IndexEntry, error) {
	data, err := os.ReadFile(MetadataPath(indexPath))
	if err != nil {
		return nil, fmt.Errorf("flat: reading metadata: %w", err)
	}

	var entries []domain.IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("flat: decoding metadata: %w", err)
	}
	return entries, nil
}

// Row returns the vector at the given row position.
func (i *Index) Row(n int) ([]float32, error) {
	if n < 0 || n >= len(i.vectors) {
		return nil, fmt.Errorf("flat: row %d out of range [0,%d): %w", n, len(i.vectors), domain.ErrNotFound)
	}
	return i.vectors[n], nil
}

// normalise scales a vector to unit L2 norm in place.
// Zero vectors are left untouched.
func normalise(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}

	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}

// writeAtomic writes via a temp file in the target directory and
// renames over the destination.
func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
