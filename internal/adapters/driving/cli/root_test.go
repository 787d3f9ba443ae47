package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig points the pipeline at a temp directory so commands
// can run without touching the working tree.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	body := `data_dir = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"

[monitoring]
log_level = "error"
log_file = ""
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		cfgPath = ""
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_RegistersPipelineCommands(t *testing.T) {
	want := []string{"extract", "transform", "chunk", "load", "run", "report", "watch", "version"}

	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		assert.True(t, registered[name], "command %s not registered", name)
	}
}

func TestReportCmd_EmptyDatabase(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "--config", cfg, "report")
	require.NoError(t, err)

	assert.Contains(t, out, "Pipeline run report")
	assert.Contains(t, out, "no runs recorded")
}

func TestChunkCmd_EmptyCorpus(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "--config", cfg, "chunk")
	require.NoError(t, err)
	assert.Contains(t, out, "chunk: success")
}

func TestExtractCmd_NoSources(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "--config", cfg, "extract")
	require.NoError(t, err)
	assert.Contains(t, out, "extract: success")
}

func TestLoadCmd_RequiresAPIKey(t *testing.T) {
	cfg := writeTestConfig(t)
	t.Setenv("OPENAI_API_KEY", "")

	_, err := execute(t, "--config", cfg, "load")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}
