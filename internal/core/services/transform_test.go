package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/normalisers/html"
)

func writeRawPage(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".html"), []byte(body), 0o600))
}

func TestTransform_CleansAndStampsMetadata(t *testing.T) {
	rawDir := filepath.Join(t.TempDir(), "raw")
	processedDir := filepath.Join(t.TempDir(), "processed")

	body := "<html><script>junk()</script><body><p>" +
		strings.Repeat("real content ", 10) + "</p></body></html>"
	writeRawPage(t, rawDir, "alpha", body)

	sources := []domain.Source{{Name: "alpha", Purpose: "research"}}
	svc := NewTransformService(html.New(nil), 50, rawDir, processedDir, sources, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	}

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsIn)
	assert.Equal(t, 1, result.ItemsOut)

	data, err := os.ReadFile(filepath.Join(processedDir, "alpha.json"))
	require.NoError(t, err)

	var out processedOutput
	require.NoError(t, json.Unmarshal(data, &out))

	assert.NotContains(t, out.Text, "junk")
	assert.NotContains(t, out.Text, "<p>")
	assert.Contains(t, out.Text, "real content")

	assert.Equal(t, "alpha", out.Metadata.Source)
	assert.Equal(t, "research", out.Metadata.Purpose)
	assert.Equal(t, "alpha.html", out.Metadata.RawFilename)
	assert.Equal(t, "2026-08-27T10:00:00Z", out.Metadata.ProcessedAt)
	assert.Equal(t, len([]rune(out.Text)), out.Metadata.TextLength)
}

func TestTransform_ShortTextIsSkipped(t *testing.T) {
	rawDir := filepath.Join(t.TempDir(), "raw")
	processedDir := filepath.Join(t.TempDir(), "processed")
	writeRawPage(t, rawDir, "tiny", "<html><body>hi</body></html>")

	svc := NewTransformService(html.New(nil), 500, rawDir, processedDir, nil, zap.NewNop())

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsIn)
	assert.Zero(t, result.ItemsOut)
	assert.Equal(t, 1, result.ItemsSkipped)
	assert.Equal(t, domain.StatusPartial, result.Status())

	_, err = os.Stat(filepath.Join(processedDir, "tiny.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestTransform_UnknownSourceGetsDefaultPurpose(t *testing.T) {
	rawDir := filepath.Join(t.TempDir(), "raw")
	processedDir := filepath.Join(t.TempDir(), "processed")
	writeRawPage(t, rawDir, "stray", strings.Repeat("words here ", 20))

	svc := NewTransformService(html.New(nil), 50, rawDir, processedDir, nil, zap.NewNop())

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(processedDir, "stray.json"))
	require.NoError(t, err)

	var out processedOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, domain.PurposeUnknown, out.Metadata.Purpose)
}

func TestTransform_EmptyRawDir(t *testing.T) {
	svc := NewTransformService(html.New(nil), 50,
		filepath.Join(t.TempDir(), "raw"),
		filepath.Join(t.TempDir(), "processed"),
		nil, zap.NewNop())

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.ItemsIn)
}
