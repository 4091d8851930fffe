package licensegate

import (
	"context"
	"fmt"
)

// DescriptorProvider fetches the declared license entries for a
// dependency from wherever descriptors live. Implementations may block on
// network or disk I/O and should honor context cancellation.
type DescriptorProvider interface {
	Describe(ctx context.Context, ref DependencyRef) ([]License, error)
}

// ResolutionError reports that a dependency descriptor could not be
// resolved. It is fatal to a validation run regardless of the fail-fast
// setting: without descriptor data no classification is possible.
type ResolutionError struct {
	Ref DependencyRef
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unable to resolve descriptor for %s: %v", e.Ref.ConflictID(), e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
