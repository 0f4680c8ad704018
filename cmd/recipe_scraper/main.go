// Package main provides the entry point for the recipe_scraper CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/jonathan/recipe-scraper/internal/fetch"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command and maps its outcome to a process exit code.
//
//nolint:errcheck // writing to stdout/stderr; errors are not recoverable
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var missing *fetch.MissingLocalFileError
		if errors.As(err, &missing) {
			fmt.Fprintf(stdout, "Snapshot %s not found. Download it with:\n  %s\n", missing.Path, missing.Remediation())
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
