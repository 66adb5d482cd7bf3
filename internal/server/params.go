package server

import (
	"strings"

	"github.com/mj1618/winctl/internal/match"
	"github.com/spf13/cast"
)

// Parameter extraction helpers for tool argument maps. JSON numbers arrive
// as float64 and clients sometimes quote them, so every helper goes through
// cast and falls back to the default on a missing or unconvertible value.

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return defaultVal
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return defaultVal
	}
	return s
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	v, ok := params[key]
	if !ok || v == nil {
		return defaultVal
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	v, ok := params[key]
	if !ok || v == nil {
		return defaultVal
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// stringSliceParam accepts either an array or a comma-separated string.
func stringSliceParam(params map[string]interface{}, key string) []string {
	v, ok := params[key]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		v = strings.Split(s, ",")
	}
	items, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// matcherParams reads the condition and flag arguments shared by the
// find tools and title-based window selection.
func matcherParams(params map[string]interface{}, defaultCond match.Condition) (match.Condition, match.Flags, error) {
	return match.Options{
		Condition:  stringParam(params, "condition", ""),
		Flags:      match.Flags(intParam(params, "flags", 0)),
		IgnoreCase: boolParam(params, "ignore_case", false),
		RegexFlags: stringParam(params, "regex_flags", ""),
		Threshold:  intParam(params, "threshold", 0),
	}.Resolve(defaultCond)
}
