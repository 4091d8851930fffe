package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/licensegate/licensegate/maven"
)

// Config creates the config command
func Config() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate a commented default configuration file",
		Long: `Generate a complete YAML configuration file with every available
licensegate option, its default value, and a comment explaining it.
Save it as .licensegate.yaml in your project and customize as needed.`,
		RunE: runConfig,
	}

	cmd.Flags().StringP("output", "o", "", "output file path (default: stdout)")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	outputFile, _ := cmd.Flags().GetString("output")
	config := generateConfig()

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		if err := os.WriteFile(outputFile, []byte(config), 0600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		fmt.Printf("Configuration written to: %s\n", outputFile)
		return nil
	}

	fmt.Print(config)
	return nil
}

func generateConfig() string {
	return `# licensegate configuration

# Evaluate the full transitive dependency closure instead of only the
# directly declared dependencies.
include-transitive: true

# License names that fail the build. Each entry is matched against a
# declared license name, first by exact equality and then as a whole-string
# regular expression (e.g. "GPL.*").
banned-licenses: []

# License names that pass the build. An allowed license always wins over a
# banned one on the same dependency. Same matching rules as above.
allowed-licenses: []

# Dependencies allowed to declare no license, matched against the
# dependency identity group:artifact:version (exact or whole-string
# regular expression, e.g. "com\.example:.*"). When this list is not
# configured at all, every unlicensed dependency fails.
allowed-unlicensed: []

# Verdict for a license matched by neither list above.
allow-unrecognised: false

# Stop at the first failing dependency instead of collecting every
# violation before reporting.
fail-fast: true

# Where dependency descriptors come from: a local cache directory plus an
# ordered list of remote repositories.
repository:
  local: ` + maven.DefaultLocalRepository + `
  remotes:
    - ` + maven.DefaultRemote + `
`
}
