package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/agiangrant/skins/cmd/skinctl/commands"
)

const version = "0.1.0"

func main() {
	if err := commands.NewRootCommand(afero.NewOsFs(), version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
