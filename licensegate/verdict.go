package licensegate

// Outcome is the classification of a single dependency.
type Outcome string

const (
	OutcomeAllowed           Outcome = "allowed"
	OutcomeBanned            Outcome = "banned"
	OutcomeUnlicensedAllowed Outcome = "unlicensed-allowed"
	OutcomeUnlicensedBanned  Outcome = "unlicensed-banned"
)

// Pass reports whether the outcome counts as a passing verdict.
func (o Outcome) Pass() bool {
	return o == OutcomeAllowed || o == OutcomeUnlicensedAllowed
}

var (
	ReasonLicenseAllowed        = "at least one declared license is allowed"
	ReasonLicenseBanned         = "at least one declared license is banned"
	ReasonUnrecognised          = "no declared license matched the allow or ban lists"
	ReasonUnlicensedAllowed     = "no declared license; dependency matches an allowed-unlicensed pattern"
	ReasonUnlicensedBanned      = "no declared license and no allowed-unlicensed pattern matched"
	ReasonNoUnlicensedAllowance = "no declared license and no allowed-unlicensed patterns are configured"
)

// Verdict is the classification result for one dependency.
type Verdict struct {
	Dependency DependencyRef `json:"dependency"`
	Licenses   []License     `json:"licenses,omitempty"`
	Outcome    Outcome       `json:"outcome"`
	Reason     string        `json:"reason"`
}

func (v Verdict) Pass() bool {
	return v.Outcome.Pass()
}
