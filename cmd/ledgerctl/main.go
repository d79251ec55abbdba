package main

import (
	"os"

	"github.com/sangkips/ledger-api/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
