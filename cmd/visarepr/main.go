// Package main provides the CLI for the visarepr representation resolver.
package main

import (
	"os"

	"github.com/visakit/visarepr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
