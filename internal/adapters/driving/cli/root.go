// Package cli wires the pipeline services behind the acadia command
// tree.
package cli

import (
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "acadia",
	Short: "Document ingestion and embedding pipeline",
	Long: `acadia fetches configured web sources, cleans them into plain
text, splits the text into overlapping chunks, and builds the
searchable artifacts: a SQLite record of documents and chunks plus a
flat vector index aligned row for row with its metadata.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "",
		"path to the config file (default "+`"config/config.toml")`)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
