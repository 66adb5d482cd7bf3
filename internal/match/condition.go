// Package match evaluates a (pattern, condition, flags) triple against
// candidate strings such as window titles and application names.
package match

import (
	"fmt"
	"strings"
)

// Condition selects how a pattern is compared to a candidate.
// Negated conditions are the arithmetic negation of their positive form.
type Condition int

const (
	Is         Condition = 1
	Contains   Condition = 2
	StartsWith Condition = 3
	EndsWith   Condition = 4

	NotIs         Condition = -Is
	NotContains   Condition = -Contains
	NotStartsWith Condition = -StartsWith
	NotEndsWith   Condition = -EndsWith

	Match    Condition = 10
	NotMatch Condition = -Match

	EditDistance Condition = 30
	DiffRatio    Condition = 31
)

var conditionNames = map[Condition]string{
	Is:            "is",
	Contains:      "contains",
	StartsWith:    "startswith",
	EndsWith:      "endswith",
	NotIs:         "notis",
	NotContains:   "notcontains",
	NotStartsWith: "notstartswith",
	NotEndsWith:   "notendswith",
	Match:         "match",
	NotMatch:      "notmatch",
	EditDistance:  "editdistance",
	DiffRatio:     "diffratio",
}

// Conditions lists every valid condition in a stable order.
var Conditions = []Condition{
	Is, Contains, StartsWith, EndsWith,
	NotIs, NotContains, NotStartsWith, NotEndsWith,
	Match, NotMatch,
	EditDistance, DiffRatio,
}

// String returns the lower-case name of c.
func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("condition(%d)", int(c))
}

// Valid reports whether c is one of the known conditions.
func (c Condition) Valid() bool {
	_, ok := conditionNames[c]
	return ok
}

// Negated reports whether c inverts the result of its positive form.
func (c Condition) Negated() bool { return c < 0 && c.Valid() }

// IsRegex reports whether the pattern is a regular expression.
func (c Condition) IsRegex() bool { return c == Match || c == NotMatch }

// IsFuzzy reports whether flags carry a similarity threshold.
func (c Condition) IsFuzzy() bool { return c == EditDistance || c == DiffRatio }

// ParseCondition converts a flag value such as "contains", "not-contains"
// or "NOT_MATCH" to a Condition.
func ParseCondition(s string) (Condition, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for c, name := range conditionNames {
		if name == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown condition: %q (expected one of %s)", s, strings.Join(ConditionNames(), ", "))
}

// ConditionNames returns the names of all conditions in a stable order.
func ConditionNames() []string {
	names := make([]string, len(Conditions))
	for i, c := range Conditions {
		names[i] = c.String()
	}
	return names
}
