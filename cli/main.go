// Package main is the entry point for the nshmdb CLI.
package main

import (
	"os"

	"github.com/seistech/nshmdb/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
