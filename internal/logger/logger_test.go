package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", "")
	require.Error(t, err)
}

func TestNew_ConsoleOnly(t *testing.T) {
	log, err := New("info", "")
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("console only")
}

func TestNew_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pipeline.log")

	log, err := New("debug", path)
	require.NoError(t, err)

	log.Info("hello from test", zap.String("step", "load"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"step":"load"`)
}
