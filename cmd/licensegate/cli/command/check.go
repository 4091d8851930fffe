package command

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"

	"github.com/licensegate/licensegate/cmd/licensegate/cli/internal"
	"github.com/licensegate/licensegate/event"
	"github.com/licensegate/licensegate/internal/bus"
	"github.com/licensegate/licensegate/internal/input"
	"github.com/licensegate/licensegate/internal/log"
	"github.com/licensegate/licensegate/licensegate"
	"github.com/licensegate/licensegate/maven"
)

// Check creates the check command
func Check() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [POM]",
		Short: "Validate the declared licenses of a project's dependencies",
		Long: `Check resolves the dependency graph of a Maven-style project descriptor,
fetches each dependency's own descriptor from the configured repositories,
and validates the declared licenses against the allow/ban policy.

The target defaults to ./pom.xml; use - to read the project descriptor
from stdin.

Exit codes:
- 0: every evaluated dependency passed the policy
- 1: one or more dependencies violated the policy
- 2: a dependency descriptor could not be resolved`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}

	cmd.Flags().Bool("fail-fast", true, "stop at the first failing dependency")
	cmd.Flags().Bool("transitive", true, "include transitive dependencies")
	cmd.Flags().StringP("output-file", "f", "", "write JSON output to a file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	globalConfig := GetGlobalConfig(cmd)

	cfg, err := internal.LoadConfig(globalConfig.ConfigFile)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return &ExitCodeError{Code: 1, Err: err}
	}
	logConfigOrigin(globalConfig)

	// flags override the config file only when explicitly set
	if cmd.Flags().Changed("fail-fast") {
		cfg.FailFast, _ = cmd.Flags().GetBool("fail-fast")
	}
	if cmd.Flags().Changed("transitive") {
		cfg.IncludeTransitive, _ = cmd.Flags().GetBool("transitive")
	}

	policy, err := licensegate.NewPolicy(cfg.PolicyConfig)
	if err != nil {
		err = fmt.Errorf("invalid policy: %w", err)
		HandleError(err, globalConfig.Quiet)
		return &ExitCodeError{Code: 1, Err: err}
	}

	target := "pom.xml"
	if len(args) > 0 {
		target = args[0]
	}

	teardown := setupEventLoop(globalConfig)
	defer teardown()

	result, _, project, err := runValidation(cmd, cfg, policy, target)
	if err != nil {
		// descriptor or project resolution failure: not a policy outcome
		HandleError(err, globalConfig.Quiet)
		return &ExitCodeError{Code: ExitResolutionError, Err: err}
	}

	report := internal.NewReport(project.ConflictID(), cfg.PolicyConfig, result)
	if err := publishReport(report, globalConfig); err != nil {
		HandleError(err, globalConfig.Quiet)
		return &ExitCodeError{Code: 1, Err: err}
	}

	if result.Failed() {
		return &ExitCodeError{Code: ExitPolicyViolation, Err: result.Err()}
	}
	return nil
}

func runValidation(cmd *cobra.Command, cfg internal.Config, policy licensegate.Policy, target string) (*licensegate.EvaluationResult, *maven.Resolution, *maven.Project, error) {
	project, err := loadProject(target)
	if err != nil {
		return nil, nil, nil, err
	}

	repo, err := maven.NewRepository(cfg.Repository)
	if err != nil {
		return nil, nil, nil, err
	}

	resolution, err := maven.NewResolver(repo).Resolve(cmd.Context(), project, policy.IncludeTransitive)
	if err != nil {
		return nil, nil, nil, err
	}

	driver := licensegate.NewDriver(maven.NewProvider(repo), policy)
	result, err := driver.Validate(cmd.Context(), resolution.Select(policy.IncludeTransitive))
	if err != nil {
		return nil, nil, nil, err
	}
	return result, resolution, project, nil
}

func loadProject(target string) (*maven.Project, error) {
	if target == "-" {
		piped, err := input.IsStdinPipeOrRedirect()
		if err != nil {
			return nil, err
		}
		if !piped {
			return nil, fmt.Errorf("no piped input on stdin; pipe a project descriptor or pass a path")
		}
	}

	reader, err := input.GetReader(target)
	if err != nil {
		return nil, err
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}
	return maven.ParseProject(reader)
}

// publishReport renders the report and hands it to the event loop for
// presentation; a JSON file copy is written directly when requested.
func publishReport(report internal.Report, globalConfig *GlobalConfig) error {
	if globalConfig.OutputFile != "" {
		if err := internal.WriteJSONFile(report, globalConfig.OutputFile); err != nil {
			return err
		}
	}

	switch globalConfig.OutputFormat {
	case internal.FormatJSON:
		rendered, err := internal.RenderJSON(report)
		if err != nil {
			return err
		}
		bus.Report(rendered)
	case internal.FormatTable:
		if globalConfig.Quiet {
			return nil
		}
		if report.Aborted {
			bus.Notify("Run stopped at the first violation (fail-fast); remaining dependencies were not evaluated.")
		}
		bus.Report(internal.RenderTable(report))
	default:
		return fmt.Errorf("unsupported output format: %s", globalConfig.OutputFormat)
	}
	return nil
}

func logConfigOrigin(globalConfig *GlobalConfig) {
	if !globalConfig.Verbose {
		return
	}
	if path := internal.GetResolvedConfigPath(); path != "" {
		log.Debugf("config file: %s", path)
	} else {
		log.Debug("no configuration file found, using defaults")
	}
}

// setupEventLoop wires the application bus: per-dependency progress from
// the driver feeds the debug log, and the rendered report and any
// notifications published by this command reach the terminal. Returns a
// teardown func that drains the subscriber before the command finishes.
func setupEventLoop(globalConfig *GlobalConfig) func() {
	b := partybus.NewBus()
	bus.Set(b)
	sub := b.Subscribe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for e := range sub.Events() {
			switch e.Type {
			case event.DependencyEvaluated:
				if p, ok := e.Value.(event.DependencyProgress); ok {
					log.Debugf("[%d/%d] %s: %s", p.Index, p.Total, p.ConflictID, p.Outcome)
				}
			case event.CLIReport:
				if s, ok := e.Value.(string); ok {
					fmt.Fprintln(os.Stdout, s)
				}
			case event.CLINotification:
				if s, ok := e.Value.(string); ok && !globalConfig.Quiet {
					fmt.Fprintln(os.Stderr, color.Yellow.Sprint(s))
				}
			}
		}
	}()

	return func() {
		bus.Set(nil)
		b.Close()
		<-done
	}
}
