// Package payload provides tolerant accessors over the raw JSON-like plan
// payload produced by the upstream AI generation step. No field is required;
// every accessor degrades to a zero value, and several fields are reachable
// under more than one key (the generators have never agreed on names).
package payload

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Plan is the raw AI-generated plan payload.
type Plan map[string]any

// DefaultDurationWeeks is used when the payload carries no usable duration.
const DefaultDurationWeeks = 4

var weeksPattern = regexp.MustCompile(`(?i)(\d+)\s*weeks?`)

// String returns the first non-empty string value found under the given
// keys, or "".
func (p Plan) String(keys ...string) string {
	for _, key := range keys {
		if s, ok := p[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// StringList returns the first value under the given keys that can be read
// as a list of strings. Non-string elements are skipped. Returns an empty
// slice when nothing matches.
func (p Plan) StringList(keys ...string) []string {
	for _, key := range keys {
		raw, ok := p[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// Object returns the first value under the given keys that is a JSON
// object, or an empty map.
func (p Plan) Object(keys ...string) map[string]any {
	for _, key := range keys {
		if m, ok := p[key].(map[string]any); ok {
			return m
		}
	}
	return map[string]any{}
}

// ObjectList returns the first value under the given keys that is a list,
// with each object element kept and everything else dropped. Returns an
// empty slice when nothing matches.
func (p Plan) ObjectList(keys ...string) []map[string]any {
	for _, key := range keys {
		raw, ok := p[key].([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(raw))
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return []map[string]any{}
}

// Int returns the first value under the given keys coercible to an int.
// JSON numbers arrive as float64; generators occasionally emit numeric
// strings too.
func (p Plan) Int(keys ...string) (int, bool) {
	for _, key := range keys {
		if n, ok := asInt(p[key]); ok {
			return n, true
		}
	}
	return 0, false
}

// DurationWeeks extracts the plan duration in weeks. It prefers
// duration_weeks, falls back to duration (which may be a bare number or a
// "N weeks" string), and defaults to DefaultDurationWeeks.
func (p Plan) DurationWeeks() int {
	if n, ok := p.Int("duration_weeks"); ok && n > 0 {
		return n
	}
	if n, ok := asInt(p["duration"]); ok && n > 0 {
		return n
	}
	if s, ok := p["duration"].(string); ok {
		if m := weeksPattern.FindStringSubmatch(s); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}
	return DefaultDurationWeeks
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}
