package licensegate

// Classify decides the fate of a single dependency from its declared
// license entries and the policy. It is a pure function: no I/O, no
// mutable state, and the same inputs always produce the same verdict.
//
// Every declared license name is checked against every pattern in both
// lists; matching is not short-circuited, and a license on the allow list
// wins even when another declared license of the same dependency is
// banned. A dependency with no license entries, or with any entry missing
// a name, is judged by the allowed-unlicensed patterns instead.
func Classify(ref DependencyRef, licenses []License, policy Policy) Verdict {
	if len(licenses) == 0 {
		return classifyUnlicensed(ref, nil, policy)
	}

	hasAllowed := false
	hasBanned := false
	for _, license := range licenses {
		// a single unnamed entry makes the whole dependency unlicensed,
		// even when an earlier entry already matched a list
		if !license.Named() {
			return classifyUnlicensed(ref, licenses, policy)
		}
		for _, m := range policy.Allowed {
			if m.Matches(license.Name) {
				hasAllowed = true
			}
		}
		for _, m := range policy.Banned {
			if m.Matches(license.Name) {
				hasBanned = true
			}
		}
	}

	switch {
	case hasAllowed:
		return Verdict{Dependency: ref, Licenses: licenses, Outcome: OutcomeAllowed, Reason: ReasonLicenseAllowed}
	case hasBanned:
		return Verdict{Dependency: ref, Licenses: licenses, Outcome: OutcomeBanned, Reason: ReasonLicenseBanned}
	case policy.AllowUnrecognised:
		return Verdict{Dependency: ref, Licenses: licenses, Outcome: OutcomeAllowed, Reason: ReasonUnrecognised}
	default:
		return Verdict{Dependency: ref, Licenses: licenses, Outcome: OutcomeBanned, Reason: ReasonUnrecognised}
	}
}

func classifyUnlicensed(ref DependencyRef, licenses []License, policy Policy) Verdict {
	if !policy.HasUnlicensedAllowance() {
		return Verdict{Dependency: ref, Licenses: licenses, Outcome: OutcomeUnlicensedBanned, Reason: ReasonNoUnlicensedAllowance}
	}

	id := ref.ConflictID()
	for _, m := range policy.AllowedUnlicensed {
		if m.Matches(id) {
			return Verdict{Dependency: ref, Licenses: licenses, Outcome: OutcomeUnlicensedAllowed, Reason: ReasonUnlicensedAllowed}
		}
	}
	return Verdict{Dependency: ref, Licenses: licenses, Outcome: OutcomeUnlicensedBanned, Reason: ReasonUnlicensedBanned}
}
