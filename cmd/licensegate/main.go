package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/licensegate/licensegate/cmd/licensegate/cli"
	"github.com/licensegate/licensegate/cmd/licensegate/cli/command"
	"github.com/licensegate/licensegate/internal"
)

var (
	version        = internal.NotProvided
	gitCommit      = internal.NotProvided
	buildDate      = internal.NotProvided
	gitDescription = internal.NotProvided
)

func main() {
	internal.SetBuildInfo(version, gitCommit, buildDate, gitDescription, runtime.Version())

	app := cli.Application()

	if err := app.Execute(); err != nil {
		// command errors were already reported; anything else (flag
		// parsing, unknown subcommands) still needs to surface
		var exitErr *command.ExitCodeError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(command.ExitCode(err))
	}
}
