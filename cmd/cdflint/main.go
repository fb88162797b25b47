// Package main is the entry point for the cdflint CLI.
package main

import (
	"fmt"
	"os"

	"github.com/civictools/cdflint/cmd/cdflint/commands"
	"github.com/civictools/cdflint/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		os.Exit(errors.ExitSuccess)
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		// Findings are already on stdout via the report; only real
		// failures need a message here.
		if exitErr.Code != errors.ExitFindings && exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(errors.ExitUser)
}
