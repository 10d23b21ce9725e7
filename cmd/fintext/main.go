// Package main is the entry point for the fintext CLI.
package main

import (
	"os"

	"github.com/steuerbar/fintext/cmd/fintext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
