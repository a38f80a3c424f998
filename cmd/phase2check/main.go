package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tccon-qc/phase2check/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", exitErr.Error())
			}
			os.Exit(exitErr.Code)
		}
		// Flag parsing and other cobra-level errors.
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}
}
