// Package main is the entry point for the mirnactl CLI binary.
package main

import (
	"os"

	"github.com/mirbrowse/server/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
