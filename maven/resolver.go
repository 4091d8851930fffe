package maven

import (
	"bytes"
	"context"

	"github.com/scylladb/go-set/strset"

	"github.com/licensegate/licensegate/internal/log"
	"github.com/licensegate/licensegate/licensegate"
)

// Resolver computes the dependency graph of a project from repository
// descriptors.
type Resolver struct {
	repo *Repository
}

func NewResolver(repo *Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Edge is a parent-to-child relation discovered during resolution. Edges
// from the project itself use the project's own ref as From.
type Edge struct {
	From licensegate.DependencyRef
	To   licensegate.DependencyRef
}

// Resolution is a resolved dependency graph plus the edges that produced
// it, for callers that want to render the shape of the graph.
type Resolution struct {
	licensegate.DependencyGraph

	Edges []Edge
}

// Resolve builds the dependency graph of a project. Direct dependencies
// come straight from the project descriptor without any I/O. When
// includeTransitive is set, the closure is computed by a breadth-first
// walk of each dependency's own descriptor: the first version seen for a
// group:artifact identity wins and cycles are not re-entered. Optional
// dependencies, test/provided/system scopes, and declarations without a
// version (managed elsewhere) are not followed.
func (r *Resolver) Resolve(ctx context.Context, project *Project, includeTransitive bool) (*Resolution, error) {
	resolution := &Resolution{}
	seen := strset.New()
	queue := make([]licensegate.DependencyRef, 0)

	for _, dep := range project.Dependencies {
		if !evaluatable(dep) {
			continue
		}
		if !mark(seen, dep.DependencyRef) {
			continue
		}
		resolution.Direct = append(resolution.Direct, dep.DependencyRef)
		resolution.Edges = append(resolution.Edges, Edge{From: project.DependencyRef, To: dep.DependencyRef})
		queue = append(queue, dep.DependencyRef)
	}
	resolution.Closure = append(resolution.Closure, resolution.Direct...)

	if !includeTransitive {
		return resolution, nil
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ref := queue[0]
		queue = queue[1:]

		data, err := r.repo.FetchDescriptor(ctx, ref)
		if err != nil {
			return nil, err
		}
		depProject, err := ParseProject(bytes.NewReader(data))
		if err != nil {
			return nil, &licensegate.ResolutionError{Ref: ref, Err: err}
		}

		for _, dep := range depProject.Dependencies {
			if !evaluatable(dep) {
				continue
			}
			if !mark(seen, dep.DependencyRef) {
				continue
			}
			resolution.Closure = append(resolution.Closure, dep.DependencyRef)
			resolution.Edges = append(resolution.Edges, Edge{From: ref, To: dep.DependencyRef})
			queue = append(queue, dep.DependencyRef)
		}
	}

	return resolution, nil
}

// mark records a group:artifact identity, returning false if it was
// already present.
func mark(seen *strset.Set, ref licensegate.DependencyRef) bool {
	key := ref.GroupID + ":" + ref.ArtifactID
	if seen.Has(key) {
		return false
	}
	seen.Add(key)
	return true
}

func evaluatable(dep Dependency) bool {
	if dep.Optional {
		return false
	}
	switch dep.Scope {
	case "test", "provided", "system":
		return false
	}
	if dep.Version == "" {
		log.WithFields("dependency", dep.GroupID+":"+dep.ArtifactID).Debug("skipping dependency without a resolvable version")
		return false
	}
	return true
}
