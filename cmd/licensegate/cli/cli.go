package cli

import (
	"github.com/spf13/cobra"

	"github.com/licensegate/licensegate/cmd/licensegate/cli/command"
	"github.com/licensegate/licensegate/internal"
)

// Application constructs the licensegate CLI application
func Application() *cobra.Command {
	app := &cobra.Command{
		Use:     "licensegate",
		Short:   "Validate the declared licenses of a project's dependency graph",
		Long:    `Licensegate resolves the dependency graph of a Maven-style project and fails the build when a dependency declares a license your policy bans, or no license at all.`,
		Version: internal.ApplicationVersion(),
		// command failures are reported by the commands themselves and
		// carried as exit codes
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			quiet, _ := cmd.Flags().GetBool("quiet")
			command.SetupLogging(verbose, quiet)
		},
	}

	// Add global flags
	app.PersistentFlags().StringP("config", "c", "", "path to configuration file")
	app.PersistentFlags().StringP("output", "o", "table", "output format (table, json)")
	app.PersistentFlags().BoolP("quiet", "q", false, "suppress all non-essential output")
	app.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Add subcommands
	app.AddCommand(
		command.Check(),
		command.Graph(),
		command.Config(),
		command.Version(),
	)

	return app
}
