package maven

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensegate/licensegate/licensegate"
)

// writeDescriptor places a POM into the repository-layout local cache.
func writeDescriptor(t *testing.T, local string, ref licensegate.DependencyRef, body string) {
	t.Helper()
	p := filepath.Join(local, filepath.FromSlash(descriptorPath(ref)))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0750))
	require.NoError(t, os.WriteFile(p, []byte(body), 0640))
}

func pomWithDeps(ref licensegate.DependencyRef, deps ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<project>\n  <groupId>%s</groupId>\n  <artifactId>%s</artifactId>\n  <version>%s</version>\n", ref.GroupID, ref.ArtifactID, ref.Version)
	if len(deps) > 0 {
		b.WriteString("  <dependencies>\n")
		for _, d := range deps {
			b.WriteString(d)
		}
		b.WriteString("  </dependencies>\n")
	}
	b.WriteString("</project>\n")
	return b.String()
}

func depXML(group, artifact, version string) string {
	return fmt.Sprintf("    <dependency><groupId>%s</groupId><artifactId>%s</artifactId><version>%s</version></dependency>\n", group, artifact, version)
}

// localOnlyRepository serves exclusively from the local cache; the single
// remote is unreachable so any remote fetch fails loudly.
func localOnlyRepository(t *testing.T, local string) *Repository {
	t.Helper()
	repo, err := NewRepository(RepositoryConfig{Local: local, Remotes: []string{"http://127.0.0.1:1"}})
	require.NoError(t, err)
	return repo
}

func ids(refs []licensegate.DependencyRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.ConflictID())
	}
	return out
}

func Test_ResolverResolveTransitive(t *testing.T) {
	local := t.TempDir()

	a := licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "a", Version: "1.0"}
	b := licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "b", Version: "1.0"}
	d := licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "d", Version: "1.0"}

	// a -> b (and a provided-scope dep that must not be followed)
	writeDescriptor(t, local, a, pomWithDeps(a,
		depXML("org.lib", "b", "1.0"),
		"    <dependency><groupId>org.lib</groupId><artifactId>runtime-only</artifactId><version>9</version><scope>provided</scope></dependency>\n",
	))
	// b -> a again at a different version (identity already claimed) and -> d
	writeDescriptor(t, local, b, pomWithDeps(b,
		depXML("org.lib", "a", "2.0"),
		depXML("org.lib", "d", "1.0"),
	))
	writeDescriptor(t, local, d, pomWithDeps(d))

	project := &Project{
		DependencyRef: licensegate.DependencyRef{GroupID: "com.example", ArtifactID: "app", Version: "1.0"},
		Dependencies: []Dependency{
			{DependencyRef: a},
			{DependencyRef: licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "testkit", Version: "1.0"}, Scope: "test"},
			{DependencyRef: licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "extras", Version: "1.0"}, Optional: true},
			{DependencyRef: licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "managed"}},
		},
	}

	resolution, err := NewResolver(localOnlyRepository(t, local)).Resolve(context.Background(), project, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"org.lib:a:1.0"}, ids(resolution.Direct))
	assert.Equal(t, []string{"org.lib:a:1.0", "org.lib:b:1.0", "org.lib:d:1.0"}, ids(resolution.Closure))

	require.Len(t, resolution.Edges, 3)
	assert.Equal(t, project.DependencyRef, resolution.Edges[0].From)
	assert.Equal(t, a, resolution.Edges[0].To)
	assert.Equal(t, a, resolution.Edges[1].From)
	assert.Equal(t, b, resolution.Edges[1].To)
	assert.Equal(t, b, resolution.Edges[2].From)
	assert.Equal(t, d, resolution.Edges[2].To)
}

func Test_ResolverResolveDirectOnlyDoesNoIO(t *testing.T) {
	a := licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "a", Version: "1.0"}
	project := &Project{
		DependencyRef: licensegate.DependencyRef{GroupID: "com.example", ArtifactID: "app", Version: "1.0"},
		Dependencies:  []Dependency{{DependencyRef: a}},
	}

	// the cache is empty and the remote is unreachable, so any descriptor
	// fetch would fail the resolution
	resolution, err := NewResolver(localOnlyRepository(t, t.TempDir())).Resolve(context.Background(), project, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"org.lib:a:1.0"}, ids(resolution.Direct))
	assert.Equal(t, ids(resolution.Direct), ids(resolution.Closure))
}

func Test_ResolverResolveCycle(t *testing.T) {
	local := t.TempDir()

	a := licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "a", Version: "1.0"}
	b := licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "b", Version: "1.0"}

	writeDescriptor(t, local, a, pomWithDeps(a, depXML("org.lib", "b", "1.0")))
	writeDescriptor(t, local, b, pomWithDeps(b, depXML("org.lib", "a", "1.0")))

	project := &Project{
		DependencyRef: licensegate.DependencyRef{GroupID: "com.example", ArtifactID: "app", Version: "1.0"},
		Dependencies:  []Dependency{{DependencyRef: a}},
	}

	resolution, err := NewResolver(localOnlyRepository(t, local)).Resolve(context.Background(), project, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.lib:a:1.0", "org.lib:b:1.0"}, ids(resolution.Closure))
}

func Test_ResolverResolveMissingDescriptor(t *testing.T) {
	a := licensegate.DependencyRef{GroupID: "org.lib", ArtifactID: "a", Version: "1.0"}
	project := &Project{
		DependencyRef: licensegate.DependencyRef{GroupID: "com.example", ArtifactID: "app", Version: "1.0"},
		Dependencies:  []Dependency{{DependencyRef: a}},
	}

	_, err := NewResolver(localOnlyRepository(t, t.TempDir())).Resolve(context.Background(), project, true)
	require.Error(t, err)

	var resolution *licensegate.ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.Equal(t, a, resolution.Ref)
}
