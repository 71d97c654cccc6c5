package main

import (
	"os"

	"github.com/tubesiphon/tubesiphon/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
