package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchore/go-logger"
	"github.com/anchore/go-logger/adapter/logrus"

	"github.com/licensegate/licensegate/internal/log"
)

// Process exit codes for command failures.
const (
	ExitPolicyViolation = 1
	ExitResolutionError = 2
)

// ExitCodeError carries the process exit code for a failure that has
// already been reported to the user. Returning it instead of calling
// os.Exit lets deferred cleanup (such as draining the event bus) run
// before the process ends.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// GlobalConfig holds configuration that applies to all commands
type GlobalConfig struct {
	ConfigFile   string
	OutputFormat string
	OutputFile   string
	Quiet        bool
	Verbose      bool
}

// GetGlobalConfig extracts global configuration from a cobra command
func GetGlobalConfig(cmd *cobra.Command) *GlobalConfig {
	configFile, _ := cmd.Flags().GetString("config")
	outputFormat, _ := cmd.Flags().GetString("output")
	outputFile, _ := cmd.Flags().GetString("output-file")
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return &GlobalConfig{
		ConfigFile:   configFile,
		OutputFormat: outputFormat,
		OutputFile:   outputFile,
		Quiet:        quiet,
		Verbose:      verbose,
	}
}

// SetupLogging configures logging based on the verbose and quiet flags
func SetupLogging(verbose, quiet bool) {
	var logLevel logger.Level
	switch {
	case quiet:
		logLevel = logger.ErrorLevel
	case verbose:
		logLevel = logger.DebugLevel
	default:
		logLevel = logger.WarnLevel
	}

	cfg := logrus.Config{
		EnableConsole: true,
		Level:         logLevel,
	}

	l, _ := logrus.New(cfg)
	log.Set(l)
}

// HandleError handles command errors consistently
func HandleError(err error, quiet bool) {
	if err != nil && !quiet {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
