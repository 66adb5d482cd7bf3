package match

import "fmt"

// Options is the user-facing form of a condition and its flags, as given
// on the command line or in tool arguments.
type Options struct {
	// Condition is a name accepted by ParseCondition. Empty selects the
	// default passed to Resolve.
	Condition string
	// Flags are raw flag bits, or a threshold for the fuzzy conditions.
	Flags      Flags
	IgnoreCase bool
	// RegexFlags are letters accepted by ParseRegexFlags.
	RegexFlags string
	// Threshold overrides Flags for the fuzzy conditions when non-zero.
	Threshold int
}

// Resolve converts o to a condition and flags. Options that do not apply
// to the selected condition are rejected rather than silently reinterpreted.
func (o Options) Resolve(def Condition) (Condition, Flags, error) {
	cond := def
	if o.Condition != "" {
		c, err := ParseCondition(o.Condition)
		if err != nil {
			return 0, 0, err
		}
		cond = c
	}

	flags := o.Flags
	if o.IgnoreCase {
		if cond.IsFuzzy() {
			return 0, 0, fmt.Errorf("ignore case does not apply to condition %s", cond)
		}
		flags |= IgnoreCase
	}
	if o.RegexFlags != "" {
		if !cond.IsRegex() {
			return 0, 0, fmt.Errorf("regex flags require condition match or notmatch, got %s", cond)
		}
		f, err := ParseRegexFlags(o.RegexFlags)
		if err != nil {
			return 0, 0, err
		}
		flags |= f
	}
	if o.Threshold != 0 {
		if !cond.IsFuzzy() {
			return 0, 0, fmt.Errorf("threshold requires condition editdistance or diffratio, got %s", cond)
		}
		flags = Flags(o.Threshold)
	}
	return cond, flags, nil
}
