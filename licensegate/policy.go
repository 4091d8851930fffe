package licensegate

// PolicyConfig is the serializable form of a Policy, as it appears in the
// configuration file.
type PolicyConfig struct {
	IncludeTransitive bool     `json:"include-transitive" yaml:"include-transitive" mapstructure:"include-transitive"`
	BannedLicenses    []string `json:"banned-licenses" yaml:"banned-licenses" mapstructure:"banned-licenses"`
	AllowedLicenses   []string `json:"allowed-licenses" yaml:"allowed-licenses" mapstructure:"allowed-licenses"`
	AllowedUnlicensed []string `json:"allowed-unlicensed" yaml:"allowed-unlicensed" mapstructure:"allowed-unlicensed"`
	AllowUnrecognised bool     `json:"allow-unrecognised" yaml:"allow-unrecognised" mapstructure:"allow-unrecognised"`
	FailFast          bool     `json:"fail-fast" yaml:"fail-fast" mapstructure:"fail-fast"`
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		IncludeTransitive: true,
		FailFast:          true,
	}
}

// Policy is the compiled rule set a validation run is evaluated against.
// It is built once from configuration and read-only afterwards.
type Policy struct {
	// Banned and Allowed are matched against declared license names.
	// A license matching Allowed always wins over one matching Banned.
	Banned  []Matcher
	Allowed []Matcher

	// AllowedUnlicensed is matched against a dependency's conflict id
	// (group:artifact:version), not a license name. A nil slice means the
	// list was never configured, which is reported differently from an
	// empty one even though both fail every unlicensed dependency.
	AllowedUnlicensed []Matcher

	// AllowUnrecognised decides the fate of a license matched by neither
	// the allow nor the ban list.
	AllowUnrecognised bool

	// FailFast stops a run at the first failing dependency instead of
	// collecting every violation.
	FailFast bool

	// IncludeTransitive widens the evaluated set from directly declared
	// dependencies to the full transitive closure.
	IncludeTransitive bool
}

// NewPolicy compiles a PolicyConfig. Invalid patterns fail construction.
func NewPolicy(cfg PolicyConfig) (Policy, error) {
	banned, err := NewMatchers(cfg.BannedLicenses)
	if err != nil {
		return Policy{}, err
	}
	allowed, err := NewMatchers(cfg.AllowedLicenses)
	if err != nil {
		return Policy{}, err
	}
	allowedUnlicensed, err := NewMatchers(cfg.AllowedUnlicensed)
	if err != nil {
		return Policy{}, err
	}
	return Policy{
		Banned:            banned,
		Allowed:           allowed,
		AllowedUnlicensed: allowedUnlicensed,
		AllowUnrecognised: cfg.AllowUnrecognised,
		FailFast:          cfg.FailFast,
		IncludeTransitive: cfg.IncludeTransitive,
	}, nil
}

// HasUnlicensedAllowance reports whether any allowed-unlicensed patterns
// were configured at all.
func (p Policy) HasUnlicensedAllowance() bool {
	return p.AllowedUnlicensed != nil
}
