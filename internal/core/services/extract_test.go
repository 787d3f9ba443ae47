package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
)

func TestExtract_FetchesEnabledSources(t *testing.T) {
	rawDir := filepath.Join(t.TempDir(), "raw")
	fetcher := &fakeFetcher{pages: map[string][]byte{
		"https://example.com/a": []byte("<html>alpha</html>"),
		"https://example.com/b": []byte("<html>beta</html>"),
	}}
	sources := []domain.Source{
		{Name: "alpha", URL: "https://example.com/a", Enabled: true},
		{Name: "beta", URL: "https://example.com/b", Enabled: true},
		{Name: "off", URL: "https://example.com/off", Enabled: false},
	}

	svc := NewExtractService(fetcher, sources, rawDir, zap.NewNop())
	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.ItemsIn)
	assert.Equal(t, 2, result.ItemsOut)
	assert.Zero(t, result.ItemsSkipped)
	assert.Equal(t, domain.StatusSuccess, result.Status())

	// Disabled sources are never fetched.
	assert.NotContains(t, fetcher.calls, "https://example.com/off")

	data, err := os.ReadFile(filepath.Join(rawDir, "alpha.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>alpha</html>", string(data))
}

func TestExtract_FailedFetchIsSkipped(t *testing.T) {
	rawDir := filepath.Join(t.TempDir(), "raw")
	fetcher := &fakeFetcher{pages: map[string][]byte{
		"https://example.com/a": []byte("<html>alpha</html>"),
	}}
	sources := []domain.Source{
		{Name: "alpha", URL: "https://example.com/a", Enabled: true},
		{Name: "gone", URL: "https://example.com/gone", Enabled: true},
	}

	svc := NewExtractService(fetcher, sources, rawDir, zap.NewNop())
	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.ItemsIn)
	assert.Equal(t, 1, result.ItemsOut)
	assert.Equal(t, 1, result.ItemsSkipped)
	assert.Equal(t, domain.StatusPartial, result.Status())

	_, err = os.Stat(filepath.Join(rawDir, "gone.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtract_NoSources(t *testing.T) {
	svc := NewExtractService(&fakeFetcher{}, nil, t.TempDir(), zap.NewNop())

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.ItemsIn)
	assert.Equal(t, domain.StatusSuccess, result.Status())
}
