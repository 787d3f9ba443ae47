package main

import (
	"os"

	"github.com/acadia-labs/acadia-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
