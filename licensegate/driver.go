package licensegate

import (
	"context"
	"errors"

	"github.com/licensegate/licensegate/internal/bus"
	"github.com/licensegate/licensegate/internal/log"
)

// Driver runs a validation pass over a dependency set: fetch each
// dependency's descriptor, classify it, aggregate the verdicts.
type Driver struct {
	Provider DescriptorProvider
	Policy   Policy
}

func NewDriver(provider DescriptorProvider, policy Policy) *Driver {
	return &Driver{
		Provider: provider,
		Policy:   policy,
	}
}

// Validate evaluates every dependency in refs, one at a time, in the
// given order. A descriptor resolution failure aborts the whole run
// immediately regardless of the fail-fast setting and is returned as the
// error; the provider is never invoked for the remaining dependencies. A
// policy violation either stops the run (fail-fast, with the partial
// result recorded) or is accumulated until the set is exhausted.
func (d *Driver) Validate(ctx context.Context, refs []DependencyRef) (*EvaluationResult, error) {
	result := &EvaluationResult{Verdicts: make([]Verdict, 0, len(refs))}

	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		licenses, err := d.Provider.Describe(ctx, ref)
		if err != nil {
			var resolution *ResolutionError
			if !errors.As(err, &resolution) {
				err = &ResolutionError{Ref: ref, Err: err}
			}
			return nil, err
		}

		verdict := Classify(ref, licenses, d.Policy)
		result.add(verdict)
		logVerdict(verdict)
		bus.DependencyEvaluated(ref.ConflictID(), string(verdict.Outcome), i+1, len(refs))

		if !verdict.Pass() && d.Policy.FailFast {
			result.Aborted = true
			break
		}
	}

	return result, nil
}

func logVerdict(v Verdict) {
	fields := log.WithFields("dependency", v.Dependency.ConflictID(), "licenses", LicenseNames(v.Licenses))
	switch v.Outcome {
	case OutcomeAllowed:
		fields.Debugf("dependency allowed: %s", v.Reason)
	case OutcomeUnlicensedAllowed:
		fields.Infof("dependency allowed without a license: %s", v.Reason)
	case OutcomeUnlicensedBanned:
		if v.Reason == ReasonNoUnlicensedAllowance {
			fields.Errorf("dependency has no license and no allowed-unlicensed patterns are configured")
			return
		}
		fields.Errorf("dependency failed: %s", v.Reason)
	default:
		fields.Errorf("dependency failed: %s", v.Reason)
	}
}
