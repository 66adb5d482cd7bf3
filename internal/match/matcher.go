package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedPattern is wrapped by errors for patterns that cannot be compiled.
var ErrMalformedPattern = errors.New("malformed pattern")

// Matcher is a compiled (pattern, condition, flags) triple. It is immutable
// and safe for concurrent use.
type Matcher struct {
	pattern   string
	cond      Condition
	flags     Flags
	lower     bool
	re        *regexp.Regexp
	threshold int
}

// Compile prepares pattern for repeated evaluation. Only Match and NotMatch
// can fail: a pattern that is not a valid regular expression returns an
// error wrapping ErrMalformedPattern. An unknown condition compiles to a
// matcher that never matches.
func Compile(pattern string, cond Condition, flags Flags) (*Matcher, error) {
	m := &Matcher{pattern: pattern, cond: cond, flags: flags}
	switch {
	case cond.IsRegex():
		re, err := regexp.Compile(flags.regexPrefix() + pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPattern, pattern, err)
		}
		m.re = re
	case cond.IsFuzzy():
		m.threshold = flags.Threshold()
	case cond.Valid():
		if flags&IgnoreCase != 0 {
			m.lower = true
			m.pattern = strings.ToLower(pattern)
		}
	}
	return m, nil
}

// MustCompile is like Compile but panics on a malformed pattern.
func MustCompile(pattern string, cond Condition, flags Flags) *Matcher {
	m, err := Compile(pattern, cond, flags)
	if err != nil {
		panic(err)
	}
	return m
}

// Matches compiles pattern and evaluates it against candidate.
func Matches(pattern, candidate string, cond Condition, flags Flags) (bool, error) {
	m, err := Compile(pattern, cond, flags)
	if err != nil {
		return false, err
	}
	return m.Match(candidate), nil
}

// Condition returns the condition m was compiled with.
func (m *Matcher) Condition() Condition { return m.cond }

// Threshold returns the effective similarity threshold for fuzzy conditions
// and 0 otherwise.
func (m *Matcher) Threshold() int { return m.threshold }

// Match evaluates candidate against the compiled pattern.
func (m *Matcher) Match(candidate string) bool {
	if m.lower {
		candidate = strings.ToLower(candidate)
	}
	switch m.cond {
	case Is:
		return candidate == m.pattern
	case NotIs:
		return candidate != m.pattern
	case Contains:
		return strings.Contains(candidate, m.pattern)
	case NotContains:
		return !strings.Contains(candidate, m.pattern)
	case StartsWith:
		return strings.HasPrefix(candidate, m.pattern)
	case NotStartsWith:
		return !strings.HasPrefix(candidate, m.pattern)
	case EndsWith:
		return strings.HasSuffix(candidate, m.pattern)
	case NotEndsWith:
		return !strings.HasSuffix(candidate, m.pattern)
	case Match:
		return m.re.MatchString(candidate)
	case NotMatch:
		return !m.re.MatchString(candidate)
	case EditDistance:
		return editDistanceAtLeast(m.pattern, candidate, m.threshold)
	case DiffRatio:
		return diffRatioAtLeast(m.pattern, candidate, m.threshold)
	default:
		return false
	}
}

// Score returns the similarity of candidate to the pattern in [0,100] for
// fuzzy conditions. Other conditions score 100 on a match and 0 otherwise.
func (m *Matcher) Score(candidate string) float64 {
	switch m.cond {
	case EditDistance:
		return EditDistanceScore(m.pattern, candidate)
	case DiffRatio:
		return DiffRatioScore(m.pattern, candidate)
	}
	if m.Match(candidate) {
		return 100
	}
	return 0
}
