package licensegate

import "fmt"

// DependencyRef identifies a single dependency under evaluation.
type DependencyRef struct {
	GroupID    string `json:"group" yaml:"group"`
	ArtifactID string `json:"artifact" yaml:"artifact"`
	Version    string `json:"version" yaml:"version"`
}

// ConflictID is the canonical string identity of the dependency,
// group:artifact:version. It is used for logging and for matching against
// the allowed-unlicensed patterns.
func (d DependencyRef) ConflictID() string {
	return fmt.Sprintf("%s:%s:%s", d.GroupID, d.ArtifactID, d.Version)
}

func (d DependencyRef) String() string {
	return d.ConflictID()
}
