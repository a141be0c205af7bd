package main

import (
	"os"

	"tokencreator/cmd/tokenctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
