package main

import (
	"os"

	"nestkeeper/cmd/nestkeeper/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
