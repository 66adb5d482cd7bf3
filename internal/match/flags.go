package match

import (
	"fmt"
	"strings"
)

// Flags refines a Condition. Its meaning depends entirely on the condition
// it is paired with:
//
//   - Is, Contains, StartsWith, EndsWith and their negations: IgnoreCase.
//   - Match, NotMatch: any combination of IgnoreCase, Multiline, DotAll, Ungreedy.
//   - EditDistance, DiffRatio: a similarity threshold in 1..100.
type Flags int

const (
	IgnoreCase Flags = 1 << iota
	Multiline
	DotAll
	Ungreedy
)

// DefaultThreshold is used by the fuzzy conditions when flags are not a valid threshold.
const DefaultThreshold = 90

// Threshold returns flags as a similarity threshold, falling back to
// DefaultThreshold when flags lie outside 1..100.
func (f Flags) Threshold() int {
	if f < 1 || f > 100 {
		return DefaultThreshold
	}
	return int(f)
}

// regexPrefix renders the regex-engine bits of f as an inline flag group.
func (f Flags) regexPrefix() string {
	var b strings.Builder
	if f&IgnoreCase != 0 {
		b.WriteByte('i')
	}
	if f&Multiline != 0 {
		b.WriteByte('m')
	}
	if f&DotAll != 0 {
		b.WriteByte('s')
	}
	if f&Ungreedy != 0 {
		b.WriteByte('U')
	}
	if b.Len() == 0 {
		return ""
	}
	return "(?" + b.String() + ")"
}

// ParseRegexFlags converts letters such as "im" or "i,s" to Flags.
// Accepted letters: i (ignore case), m (multiline), s (dot matches newline), U (ungreedy).
func ParseRegexFlags(s string) (Flags, error) {
	var f Flags
	for _, r := range s {
		switch r {
		case 'i', 'I':
			f |= IgnoreCase
		case 'm', 'M':
			f |= Multiline
		case 's', 'S':
			f |= DotAll
		case 'U', 'u':
			f |= Ungreedy
		case ',', ' ', '|':
		default:
			return 0, fmt.Errorf("unknown regex flag %q in %q (expected i, m, s or U)", r, s)
		}
	}
	return f, nil
}
