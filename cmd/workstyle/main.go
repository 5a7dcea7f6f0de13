// Package main is the entry point for the workstyle daemon and CLI.
package main

import (
	"os"

	"github.com/watchfire-io/workstyle/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
