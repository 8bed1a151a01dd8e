// Package main provides the rainforest warehouse CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks errors caused by how the command was invoked rather than by
// the pipeline itself.
var errUsage = errors.New("usage error")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) || errors.Is(err, etl.ErrUnknownTable) {
			os.Exit(exitUsage)
		}
		os.Exit(exitFailure)
	}
	os.Exit(exitSuccess)
}
