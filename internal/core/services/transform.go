package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
	"github.com/acadia-labs/acadia-cli/internal/normalisers/html"
)

// Ensure TransformService implements the interface.
var _ driving.StepRunner = (*TransformService)(nil)

// processedOutput is the on-disk shape consumed by the chunk and load
// stages.
type processedOutput struct {
	Text     string            `json:"text"`
	Metadata processedMetadata `json:"metadata"`
}

type processedMetadata struct {
	Source      string `json:"source"`
	Purpose     string `json:"purpose"`
	RawFilename string `json:"raw_filename"`
	ProcessedAt string `json:"processed_at"`
	TextLength  int    `json:"text_length"`
}

// TransformService cleans every raw HTML page into plain text and
// writes one processed JSON document per source. Pages whose cleaned
// text falls below the minimum length are skipped, as are pages that
// cannot be read.
type TransformService struct {
	normaliser    *html.Normaliser
	minTextLength int
	rawDir        string
	processedDir  string
	purposes      map[string]string
	log           *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewTransformService creates the transform stage. Source purposes are
// looked up by source name when stamping processed metadata.
func NewTransformService(normaliser *html.Normaliser, minTextLength int, rawDir, processedDir string, sources []domain.Source, log *zap.Logger) *TransformService {
	purposes := make(map[string]string, len(sources))
	for _, src := range sources {
		if src.Purpose != "" {
			purposes[src.Name] = src.Purpose
		}
	}

	return &TransformService{
		normaliser:    normaliser,
		minTextLength: minTextLength,
		rawDir:        rawDir,
		processedDir:  processedDir,
		purposes:      purposes,
		log:           log,
		now:           time.Now,
	}
}

// Step returns the stage name.
func (s *TransformService) Step() string {
	return domain.StepTransform
}

// Run cleans all raw pages.
func (s *TransformService) Run(ctx context.Context) (*driving.StepResult, error) {
	paths, err := filepath.Glob(filepath.Join(s.rawDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.rawDir, err)
	}

	if err := os.MkdirAll(s.processedDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating processed directory: %w", err)
	}

	result := &driving.StepResult{
		Step:    s.Step(),
		ItemsIn: len(paths),
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		raw, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn("reading raw page failed", zap.String("path", path), zap.Error(err))
			result.ItemsSkipped++
			continue
		}

		text := s.normaliser.Clean(string(raw))
		length := len([]rune(text))
		if length < s.minTextLength {
			s.log.Warn("cleaned text too short, skipping",
				zap.String("source", name),
				zap.Int("length", length),
				zap.Int("min_length", s.minTextLength))
			result.ItemsSkipped++
			continue
		}

		purpose := s.purposes[name]
		if purpose == "" {
			purpose = domain.PurposeUnknown
		}

		out := processedOutput{
			Text: text,
			Metadata: processedMetadata{
				Source:      name,
				Purpose:     purpose,
				RawFilename: filepath.Base(path),
				ProcessedAt: s.now().UTC().Format(time.RFC3339),
				TextLength:  length,
			},
		}

		if err := writeJSON(filepath.Join(s.processedDir, name+".json"), out); err != nil {
			return nil, err
		}

		s.log.Info("processed source",
			zap.String("source", name),
			zap.Int("text_length", length))
		result.ItemsOut++
	}

	return result, nil
}

// writeJSON marshals v with indentation and writes it to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
