package server

import (
	"reflect"
	"testing"

	"github.com/mj1618/winctl/internal/match"
)

func TestParams(t *testing.T) {
	params := map[string]interface{}{
		"s":     "text",
		"n":     float64(42),
		"nstr":  "17",
		"b":     true,
		"bstr":  "true",
		"bad":   map[string]interface{}{},
		"null":  nil,
		"list":  []interface{}{"a", " b ", ""},
		"csv":   "x, y,,z",
		"num":   float64(7),
		"empty": "",
	}

	if got := stringParam(params, "s", "d"); got != "text" {
		t.Errorf("stringParam = %q", got)
	}
	if got := stringParam(params, "num", "d"); got != "7" {
		t.Errorf("stringParam(number) = %q, want 7", got)
	}
	if got := stringParam(params, "missing", "d"); got != "d" {
		t.Errorf("stringParam(missing) = %q, want default", got)
	}
	if got := stringParam(params, "null", "d"); got != "d" {
		t.Errorf("stringParam(nil) = %q, want default", got)
	}
	if got := intParam(params, "n", 0); got != 42 {
		t.Errorf("intParam = %d, want 42", got)
	}
	if got := intParam(params, "nstr", 0); got != 17 {
		t.Errorf("intParam(string) = %d, want 17", got)
	}
	if got := intParam(params, "bad", 5); got != 5 {
		t.Errorf("intParam(bad) = %d, want default", got)
	}
	if got := boolParam(params, "b", false); !got {
		t.Error("boolParam = false, want true")
	}
	if got := boolParam(params, "bstr", false); !got {
		t.Error("boolParam(string) = false, want true")
	}
	if got := boolParam(params, "missing", true); !got {
		t.Error("boolParam(missing) should return the default")
	}
	if got, want := stringSliceParam(params, "list"), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("stringSliceParam(list) = %v, want %v", got, want)
	}
	if got, want := stringSliceParam(params, "csv"), []string{"x", "y", "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("stringSliceParam(csv) = %v, want %v", got, want)
	}
	if got := stringSliceParam(params, "empty"); got != nil {
		t.Errorf("stringSliceParam(empty) = %v, want nil", got)
	}
}

func TestMatcherParams(t *testing.T) {
	tests := []struct {
		name      string
		params    map[string]interface{}
		wantCond  match.Condition
		wantFlags match.Flags
		wantErr   bool
	}{
		{"defaults", map[string]interface{}{}, match.Contains, 0, false},
		{"ignore case", map[string]interface{}{"ignore_case": true}, match.Contains, match.IgnoreCase, false},
		{"raw flags", map[string]interface{}{"condition": "match", "flags": float64(3)}, match.Match, match.IgnoreCase | match.Multiline, false},
		{"regex letters", map[string]interface{}{"condition": "notmatch", "regex_flags": "is"}, match.NotMatch, match.IgnoreCase | match.DotAll, false},
		{"threshold", map[string]interface{}{"condition": "diffratio", "threshold": float64(80)}, match.DiffRatio, 80, false},
		{"fuzzy without threshold", map[string]interface{}{"condition": "editdistance"}, match.EditDistance, 0, false},
		{"bad condition", map[string]interface{}{"condition": "near"}, 0, 0, true},
		{"bad regex letter", map[string]interface{}{"condition": "match", "regex_flags": "x"}, 0, 0, true},
		{"ignore case on fuzzy", map[string]interface{}{"condition": "diffratio", "ignore_case": true}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, flags, err := matcherParams(tt.params, match.Contains)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cond != tt.wantCond || flags != tt.wantFlags {
				t.Errorf("got (%s, %d), want (%s, %d)", cond, flags, tt.wantCond, tt.wantFlags)
			}
		})
	}
}
