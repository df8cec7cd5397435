// Package main is the entry point for the snapkeeper CLI.
package main

import (
	"os"

	"github.com/rksv/snapkeeper/cmd/snapkeeper/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
