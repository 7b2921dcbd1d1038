package main

import (
	"os"

	"github.com/harmonic-pos/salonledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
