// Package main provides the probelens data quality profiler CLI.
package main

import (
	"os"

	"github.com/probelens-labs/probelens/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
