package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "github.com/acadia-labs/acadia-cli/internal/adapters/driven/config/file"
	"github.com/acadia-labs/acadia-cli/internal/adapters/driven/embedding/openai"
	"github.com/acadia-labs/acadia-cli/internal/adapters/driven/fetch/web"
	"github.com/acadia-labs/acadia-cli/internal/adapters/driven/index/flat"
	sourcefile "github.com/acadia-labs/acadia-cli/internal/adapters/driven/source/file"
	"github.com/acadia-labs/acadia-cli/internal/adapters/driven/storage/sqlite"
	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
	"github.com/acadia-labs/acadia-cli/internal/core/services"
	"github.com/acadia-labs/acadia-cli/internal/logger"
	"github.com/acadia-labs/acadia-cli/internal/normalisers/html"
	"github.com/acadia-labs/acadia-cli/internal/postprocessors/chunker"
)

// app bundles the configuration and the wired adapters for one command
// invocation.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *sqlite.Store
}

// newApp loads the configuration, builds the logger and opens the
// store. Callers must Close the returned app.
func newApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Monitoring.LogLevel
	if verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Monitoring.LogFile)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &app{cfg: cfg, log: log, store: store}, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	_ = a.store.Close()
	_ = a.log.Sync()
}

func (a *app) sources() []domain.Source {
	out := make([]domain.Source, 0, len(a.cfg.Sources))
	for _, src := range a.cfg.Sources {
		out = append(out, domain.Source{
			Name:    src.Name,
			URL:     src.URL,
			Purpose: src.Purpose,
			Enabled: src.Enabled,
		})
	}
	return out
}

func (a *app) documents() *sourcefile.Source {
	return sourcefile.New(a.cfg.ProcessedDir(), a.cfg.ChunkedDir())
}

func (a *app) processor() *chunker.Processor {
	return chunker.New(
		chunker.WithChunkSize(a.cfg.Chunking.ChunkSize),
		chunker.WithOverlap(a.cfg.Chunking.ChunkOverlap),
		chunker.WithMinChunkSize(a.cfg.Chunking.MinChunkSize),
	)
}

func (a *app) extractService() *services.ExtractService {
	return services.NewExtractService(web.New(web.Config{}), a.sources(), a.cfg.RawDir(), a.log)
}

func (a *app) transformService() *services.TransformService {
	return services.NewTransformService(
		html.New(a.cfg.Transform.StripTags),
		a.cfg.Transform.MinTextLength,
		a.cfg.RawDir(),
		a.cfg.ProcessedDir(),
		a.sources(),
		a.log,
	)
}

func (a *app) chunkService() *services.ChunkService {
	return services.NewChunkService(a.documents(), a.processor(), a.cfg.ChunkedDir(), a.log)
}

func (a *app) loadService() (*services.LoadService, error) {
	if a.cfg.APIKey() == "" {
		return nil, fmt.Errorf("%w: no API key in $%s",
			domain.ErrEmbeddingUnavailable, a.cfg.Embedding.APIKeyEnv)
	}

	embedder, err := openai.NewEmbeddingService(openai.Config{
		APIKey:     a.cfg.APIKey(),
		BaseURL:    a.cfg.Embedding.BaseURL,
		Model:      a.cfg.Embedding.Model,
		Dimensions: a.cfg.Embedding.Dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring embedding service: %w", err)
	}

	batcher := services.NewEmbeddingBatcher(embedder, a.cfg.Embedding.BatchSize, a.log)
	indexPath := a.cfg.IndexPath()
	factory := func(dim int) (driven.VectorIndex, error) {
		return flat.New(dim, indexPath)
	}

	return services.NewLoadService(
		a.documents(),
		a.store.DocumentStore(),
		batcher,
		factory,
		a.processor(),
		embedder.Dimensions(),
		a.log,
	), nil
}

// runStep executes one stage under the given pipeline id and prints
// its outcome.
func (a *app) runStep(cmd *cobra.Command, runner driving.StepRunner, pipelineID string) error {
	result, err := services.RunTracked(cmd.Context(), runner, a.store.RunTracker(), pipelineID, a.log)
	if err != nil {
		return fmt.Errorf("%s failed: %w", runner.Step(), err)
	}

	cmd.Printf("%s: %s (in=%d out=%d skipped=%d)\n",
		runner.Step(), result.Status(),
		result.ItemsIn, result.ItemsOut, result.ItemsSkipped)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Printf("  %s=%g\n", name, result.Metrics[name])
	}
	return nil
}
