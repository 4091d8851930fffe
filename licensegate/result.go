package licensegate

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// EvaluationResult aggregates the verdicts of a validation run in the
// order they were produced.
type EvaluationResult struct {
	Verdicts []Verdict `json:"verdicts"`

	// Aborted is true when a fail-fast run stopped before evaluating the
	// remaining dependencies; only the partial verdict list is recorded.
	Aborted bool `json:"aborted"`
}

func (r *EvaluationResult) add(v Verdict) {
	r.Verdicts = append(r.Verdicts, v)
}

// Failed reports whether any recorded verdict failed.
func (r EvaluationResult) Failed() bool {
	for _, v := range r.Verdicts {
		if !v.Pass() {
			return true
		}
	}
	return false
}

// FailedVerdicts returns the failing verdicts, preserving run order.
func (r EvaluationResult) FailedVerdicts() []Verdict {
	failed := make([]Verdict, 0)
	for _, v := range r.Verdicts {
		if !v.Pass() {
			failed = append(failed, v)
		}
	}
	return failed
}

// Err folds every policy violation into a single error, one entry per
// failing dependency, or nil when the run passed.
func (r EvaluationResult) Err() error {
	var errs *multierror.Error
	for _, v := range r.FailedVerdicts() {
		errs = multierror.Append(errs, fmt.Errorf("%s: %s (%s)", v.Dependency.ConflictID(), v.Outcome, v.Reason))
	}
	return errs.ErrorOrNil()
}

// Summary provides high-level statistics about a run. Unlicensed counts
// dependencies judged by the allowed-unlicensed rule, whichever way the
// judgement went; those dependencies are also counted as allowed or
// banned.
type Summary struct {
	Total      int `json:"total"`
	Allowed    int `json:"allowed"`
	Banned     int `json:"banned"`
	Unlicensed int `json:"unlicensed"`
}

func (r EvaluationResult) Summary() Summary {
	s := Summary{Total: len(r.Verdicts)}
	for _, v := range r.Verdicts {
		if v.Pass() {
			s.Allowed++
		} else {
			s.Banned++
		}
		if v.Outcome == OutcomeUnlicensedAllowed || v.Outcome == OutcomeUnlicensedBanned {
			s.Unlicensed++
		}
	}
	return s
}
