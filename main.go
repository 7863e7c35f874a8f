package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/renvik/clipvault/internal/cli"
)

func main() {
	// Parse command-line arguments
	var args cli.Args
	arg.MustParse(&args)

	// Create CLI instance with args for snapshot location support
	cliHandler, err := cli.NewWithArgs(&args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Execute the command; no subcommand launches the browser
	if err := cliHandler.Execute(&args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
