// Package main is the entry point for the relocation-quote CLI.
package main

import (
	"os"

	"relocation-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
