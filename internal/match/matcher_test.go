package match

import (
	"errors"
	"testing"
)

func mustMatch(t *testing.T, pattern, candidate string, cond Condition, flags Flags) bool {
	t.Helper()
	ok, err := Matches(pattern, candidate, cond, flags)
	if err != nil {
		t.Fatalf("Matches(%q, %q, %v, %d): %v", pattern, candidate, cond, flags, err)
	}
	return ok
}

func TestIs_EqualStrings(t *testing.T) {
	for _, s := range []string{"", "Untitled - Notepad", "ÄÖÜ über", "a\tb"} {
		if !mustMatch(t, s, s, Is, 0) {
			t.Errorf("Is(%q, %q) should match", s, s)
		}
		if mustMatch(t, s, s, NotIs, 0) {
			t.Errorf("NotIs(%q, %q) should not match", s, s)
		}
	}
}

func TestLiteralConditions(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		cond      Condition
		flags     Flags
		want      bool
	}{
		{"is_case_sensitive", "notepad", "Notepad", Is, 0, false},
		{"is_ignore_case", "notepad", "Notepad", Is, IgnoreCase, true},
		{"notis_ignore_case", "notepad", "Notepad", NotIs, IgnoreCase, false},
		{"contains_ignore_case", "ABC", "xaBcz", Contains, IgnoreCase, true},
		{"contains_case_sensitive", "ABC", "xaBcz", Contains, 0, false},
		{"notcontains", "Chrome", "Mozilla Firefox", NotContains, 0, true},
		{"startswith", "Untitled", "Untitled - Notepad", StartsWith, 0, true},
		{"startswith_ignore_case", "untitled", "Untitled - Notepad", StartsWith, IgnoreCase, true},
		{"notstartswith", "Notepad", "Untitled - Notepad", NotStartsWith, 0, true},
		{"endswith", "Notepad", "Untitled - Notepad", EndsWith, 0, true},
		{"notendswith", "Notepad", "Untitled - Notepad", NotEndsWith, 0, false},
		{"notendswith_ignore_case", "NOTEPAD", "Untitled - Notepad", NotEndsWith, IgnoreCase, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustMatch(t, tt.pattern, tt.candidate, tt.cond, tt.flags); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegexConditions(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		cond      Condition
		flags     Flags
		want      bool
	}{
		{"match_anywhere", `Doc\d+`, "Report Doc12 - Editor", Match, 0, true},
		{"match_anchored_miss", `^Doc\d+`, "Report Doc12", Match, 0, false},
		{"notmatch", `^Doc\d+`, "Report Doc12", NotMatch, 0, true},
		{"match_case_sensitive", `^doc`, "Doc1", Match, 0, false},
		{"match_ignore_case", `^doc`, "Doc1", Match, IgnoreCase, true},
		{"match_multiline", `^second$`, "first\nsecond", Match, Multiline, true},
		{"match_no_multiline", `^second$`, "first\nsecond", Match, 0, false},
		{"match_dotall", `first.second`, "first\nsecond", Match, DotAll, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustMatch(t, tt.pattern, tt.candidate, tt.cond, tt.flags); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegex_IgnoreCaseDoesNotLowercasePattern(t *testing.T) {
	// \D would become \d if the pattern were lowercased.
	if !mustMatch(t, `^\D+$`, "ABC", Match, IgnoreCase) {
		t.Error("regex pattern must not be lowercased")
	}
}

func TestMalformedRegex(t *testing.T) {
	for _, cond := range []Condition{Match, NotMatch} {
		_, err := Matches(`([`, "anything", cond, 0)
		if err == nil {
			t.Fatalf("%v: expected error for malformed regex", cond)
		}
		if !errors.Is(err, ErrMalformedPattern) {
			t.Errorf("%v: error %v does not wrap ErrMalformedPattern", cond, err)
		}
	}
}

func TestMalformedRegex_OnlyForRegexConditions(t *testing.T) {
	if _, err := Matches(`([`, "([", Is, 0); err != nil {
		t.Errorf("literal conditions must not parse the pattern: %v", err)
	}
}

func TestUnknownConditionFailsClosed(t *testing.T) {
	for _, cond := range []Condition{0, 99, -30} {
		ok, err := Matches("same", "same", cond, 0)
		if err != nil {
			t.Errorf("%v: unexpected error %v", cond, err)
		}
		if ok {
			t.Errorf("%v: unknown condition should never match", cond)
		}
	}
}

func TestEditDistanceThresholdInclusive(t *testing.T) {
	// One substitution over ten runes scores exactly 90.
	pattern, candidate := "abcdefghij", "abcdefghiX"
	if score := EditDistanceScore(pattern, candidate); score != 90 {
		t.Fatalf("score = %v, want 90", score)
	}
	if !mustMatch(t, pattern, candidate, EditDistance, 90) {
		t.Error("score equal to threshold should match")
	}
	if mustMatch(t, pattern, candidate, EditDistance, 91) {
		t.Error("score one point below threshold should not match")
	}
}

func TestDiffRatioThresholdInclusive(t *testing.T) {
	// "abc" is shared: 2*3/8 = 75.
	pattern, candidate := "abcd", "abce"
	if score := DiffRatioScore(pattern, candidate); score != 75 {
		t.Fatalf("score = %v, want 75", score)
	}
	if !mustMatch(t, pattern, candidate, DiffRatio, 75) {
		t.Error("score equal to threshold should match")
	}
	if mustMatch(t, pattern, candidate, DiffRatio, 76) {
		t.Error("score one point below threshold should not match")
	}
}

func TestFuzzyDefaultThreshold(t *testing.T) {
	// Scores 90 against the default threshold, 80 would be too lenient to tell apart.
	pattern, candidate := "abcdefghij", "abcdefghiX"
	for _, flags := range []Flags{0, -5, 101, 1000} {
		m, err := Compile(pattern, EditDistance, flags)
		if err != nil {
			t.Fatal(err)
		}
		if m.Threshold() != DefaultThreshold {
			t.Errorf("flags %d: threshold = %d, want %d", flags, m.Threshold(), DefaultThreshold)
		}
		if !m.Match(candidate) {
			t.Errorf("flags %d: expected match at default threshold", flags)
		}
	}
	if mustMatch(t, pattern, "abcdefgXYZ", EditDistance, 0) {
		t.Error("score 70 should not match the default threshold")
	}
}

func TestFuzzy_IgnoreCaseBitIsAThreshold(t *testing.T) {
	// For fuzzy conditions the flag slot is a threshold, so IgnoreCase (1)
	// means "threshold 1" and does not lowercase anything.
	m := MustCompile("ABC", EditDistance, IgnoreCase)
	if m.Threshold() != 1 {
		t.Errorf("threshold = %d, want 1", m.Threshold())
	}
	if m.Score("abc") != 0 {
		t.Errorf("score = %v, want 0 (case differs on every rune)", m.Score("abc"))
	}
}

func TestScores_EmptyStrings(t *testing.T) {
	if EditDistanceScore("", "") != 100 || DiffRatioScore("", "") != 100 {
		t.Error("two empty strings should be identical")
	}
	if EditDistanceScore("", "abc") != 0 || DiffRatioScore("", "abc") != 0 {
		t.Error("empty vs non-empty should score 0")
	}
}

func TestEditDistanceScore_Unicode(t *testing.T) {
	// Lengths are counted in runes, not bytes.
	if score := EditDistanceScore("café", "cafe"); score != 75 {
		t.Errorf("score = %v, want 75", score)
	}
}

func TestMatcher_Score(t *testing.T) {
	m := MustCompile("Notepad", Contains, 0)
	if m.Score("Untitled - Notepad") != 100 || m.Score("Paint") != 0 {
		t.Error("literal scores should be 100 or 0")
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustCompile("(", Match, 0)
}
