package licensegate

// DependencyGraph is the resolved dependency set of a project, split into
// the directly declared dependencies and the full transitive closure.
// Both slices are unique by group:artifact identity; the closure includes
// the direct set.
type DependencyGraph struct {
	Direct  []DependencyRef `json:"direct"`
	Closure []DependencyRef `json:"closure"`
}

// Select returns the dependency set a validation run should evaluate.
func (g DependencyGraph) Select(includeTransitive bool) []DependencyRef {
	if includeTransitive {
		return g.Closure
	}
	return g.Direct
}
