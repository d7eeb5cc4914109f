// Package main is the entry point for the routecat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/routecat/routecat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
