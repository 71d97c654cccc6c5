package mediainfo

import (
	"math"
	"strconv"
)

// Decode-with-default accessors. Upstream JSON is handled as plain
// map[string]any values; whenever a field's runtime type is not the expected
// one, the named default wins. Nothing in this file returns an error.

func str(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func num(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

func intval(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return def
}

func boolean(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// boolField distinguishes "flag present" from "flag absent", which the
// classifier needs for the availability-flag rules.
func boolField(m map[string]any, key string) (value, present bool) {
	v, ok := m[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		return false, false
	}
	return b, true
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asItems accepts an array of objects or a single bare object; some upstreams
// return `medias` either way depending on how many streams exist.
func asItems(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		items := make([]map[string]any, 0, len(t))
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				items = append(items, m)
			}
		}
		return items
	case map[string]any:
		return []map[string]any{t}
	}
	return nil
}

// firstString returns the first key in m holding a non-empty string.
func firstString(m map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return def
}

// idString renders an upstream identifier that may arrive as a string or a
// JSON number (itags are numeric). Returns "" when neither.
func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
