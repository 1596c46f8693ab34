package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kestrelworks/forksync/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
	defaultFailureExitCode    = 1
)

// main executes the forksync command-line application and maps failures to exit codes.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)

	var codedError interface{ ExitCode() int }
	if errors.As(executionError, &codedError) {
		os.Exit(codedError.ExitCode())
	}

	os.Exit(defaultFailureExitCode)
}
