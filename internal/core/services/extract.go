package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
)

// Ensure ExtractService implements the interface.
var _ driving.StepRunner = (*ExtractService)(nil)

// ExtractService fetches every enabled source URL and saves the raw
// page under the raw directory, one file per source. A failed fetch
// skips that source; the stage only fails as a whole when the raw
// directory cannot be written.
type ExtractService struct {
	fetcher driven.Fetcher
	sources []domain.Source
	rawDir  string
	log     *zap.Logger
}

// NewExtractService creates the extract stage.
func NewExtractService(fetcher driven.Fetcher, sources []domain.Source, rawDir string, log *zap.Logger) *ExtractService {
	return &ExtractService{
		fetcher: fetcher,
		sources: sources,
		rawDir:  rawDir,
		log:     log,
	}
}

// Step returns the stage name.
func (s *ExtractService) Step() string {
	return domain.StepExtract
}

// Run fetches all enabled sources.
func (s *ExtractService) Run(ctx context.Context) (*driving.StepResult, error) {
	if err := os.MkdirAll(s.rawDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating raw directory: %w", err)
	}

	result := &driving.StepResult{Step: s.Step()}

	for _, src := range s.sources {
		if !src.Enabled {
			s.log.Debug("source disabled, skipping", zap.String("source", src.Name))
			continue
		}
		result.ItemsIn++

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := s.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			s.log.Warn("fetch failed",
				zap.String("source", src.Name),
				zap.String("url", src.URL),
				zap.Error(err))
			result.ItemsSkipped++
			continue
		}

		path := filepath.Join(s.rawDir, src.Name+".html")
		if err := os.WriteFile(path, body, 0o600); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}

		s.log.Info("fetched source",
			zap.String("source", src.Name),
			zap.Int("bytes", len(body)))
		result.ItemsOut++
	}

	return result, nil
}
