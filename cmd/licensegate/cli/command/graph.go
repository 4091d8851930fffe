package command

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/spf13/cobra"

	"github.com/licensegate/licensegate/cmd/licensegate/cli/internal"
	"github.com/licensegate/licensegate/licensegate"
	"github.com/licensegate/licensegate/maven"
)

const graphName = "dependencies"

// Graph creates the graph command
func Graph() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [POM]",
		Short: "Render the dependency graph with license verdicts as Graphviz DOT",
		Long: `Graph resolves the project's dependency graph, classifies every
dependency against the policy, and prints the graph in Graphviz DOT
format: allowed dependencies in green, failing ones in red.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGraph,
	}
}

func runGraph(cmd *cobra.Command, args []string) error {
	globalConfig := GetGlobalConfig(cmd)

	cfg, err := internal.LoadConfig(globalConfig.ConfigFile)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return &ExitCodeError{Code: 1, Err: err}
	}

	// every node gets a verdict, so never stop early here
	cfg.FailFast = false
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

	result, resolution, project, err := runValidation(cmd, cfg, policy, target)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return &ExitCodeError{Code: ExitResolutionError, Err: err}
	}

	dot, err := renderDOT(project, resolution, result)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return &ExitCodeError{Code: 1, Err: err}
	}

	fmt.Println(dot)
	return nil
}

func renderDOT(project *maven.Project, resolution *maven.Resolution, result *licensegate.EvaluationResult) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	if err := g.AddNode(graphName, nodeID(project.DependencyRef), map[string]string{
		"shape": "box",
		"style": "filled",
	}); err != nil {
		return "", err
	}

	outcomes := make(map[string]licensegate.Outcome, len(result.Verdicts))
	for _, v := range result.Verdicts {
		outcomes[v.Dependency.ConflictID()] = v.Outcome
	}

	for _, ref := range resolution.Closure {
		attrs := map[string]string{"style": "filled", "fillcolor": "lightgray"}
		if outcome, ok := outcomes[ref.ConflictID()]; ok {
			if outcome.Pass() {
				attrs["fillcolor"] = "palegreen"
			} else {
				attrs["fillcolor"] = "lightcoral"
			}
		}
		if err := g.AddNode(graphName, nodeID(ref), attrs); err != nil {
			return "", err
		}
	}

	for _, e := range resolution.Edges {
		if err := g.AddEdge(nodeID(e.From), nodeID(e.To), true, nil); err != nil {
			return "", err
		}
	}

	return g.String(), nil
}

func nodeID(ref licensegate.DependencyRef) string {
	return strconv.Quote(ref.ConflictID())
}
