package main

import (
	"os"

	"portfoliobacktest/cmd/portfolio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
