package maven

import (
	"bytes"
	"context"

	"github.com/licensegate/licensegate/licensegate"
)

// Provider is a licensegate.DescriptorProvider backed by a Repository.
type Provider struct {
	repo *Repository
}

func NewProvider(repo *Repository) *Provider {
	return &Provider{repo: repo}
}

// Describe fetches and parses the descriptor for ref and returns its
// declared license entries, which may be empty.
func (p *Provider) Describe(ctx context.Context, ref licensegate.DependencyRef) ([]licensegate.License, error) {
	data, err := p.repo.FetchDescriptor(ctx, ref)
	if err != nil {
		return nil, err
	}

	project, err := ParseProject(bytes.NewReader(data))
	if err != nil {
		return nil, &licensegate.ResolutionError{Ref: ref, Err: err}
	}

	return project.Licenses, nil
}
