package licensegate

import (
	"fmt"
	"regexp"
)

// Matcher matches candidate strings against a single configured pattern.
// A candidate matches when it is exactly equal to the pattern, or when the
// pattern, interpreted as a regular expression, matches the whole
// candidate. Matching is case-sensitive and the regular expression is
// implicitly anchored: the pattern "Apache" does not match
// "Apache License 2.0", but "Apache.*" does.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewMatcher compiles a pattern into a Matcher. Patterns that are not
// valid regular expressions are rejected here rather than at match time.
func NewMatcher(pattern string) (Matcher, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return Matcher{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return Matcher{pattern: pattern, re: re}, nil
}

// NewMatchers compiles a list of patterns. A nil input stays nil so that
// callers can tell an unset list apart from an explicitly empty one.
func NewMatchers(patterns []string) ([]Matcher, error) {
	if patterns == nil {
		return nil, nil
	}
	matchers := make([]Matcher, 0, len(patterns))
	for _, pattern := range patterns {
		m, err := NewMatcher(pattern)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

func (m Matcher) Matches(candidate string) bool {
	return candidate == m.pattern || m.re.MatchString(candidate)
}

func (m Matcher) String() string {
	return m.pattern
}
