package expr

import (
	"encoding/json"
	"strconv"
	"strings"
)

// absentValue marks a path that resolved through a missing segment.
// Absence is an ordinary value, not an error, so that checks like
// `steps.nope.outputs.x != ""` hold intuitively instead of blowing up.
type absentValue struct{}

// Absent is the marker produced when a path lookup misses.
var Absent = absentValue{}

// IsAbsent reports whether v is the absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absentValue)
	return ok
}

// Stringify renders a resolved value for interpolation into surrounding
// literal text. Absent values render empty.
func Stringify(v any) string {
	switch t := v.(type) {
	case absentValue:
		return ""
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// asFloat converts numeric values to float64 for `==`/`!=` numeric
// comparison. Strings never coerce here, so `"3" == 3` stays false.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// orderedOperand coerces an ordering operand to float64. Numeric strings
// participate because the env namespace is string-valued, so
// `env.COUNT > 2` must work when COUNT holds "3". Ordering on anything
// that does not parse is an error at the call site.
func orderedOperand(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return asFloat(v)
}

// valuesEqual implements `==`. Numbers compare numerically across int and
// float representations; absent equals only absent; maps and slices
// compare deeply.
func valuesEqual(a, b any) bool {
	if IsAbsent(a) || IsAbsent(b) {
		return IsAbsent(a) && IsAbsent(b)
	}

	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}

	switch at := a.(type) {
	case nil:
		return b == nil
	case string:
		bt, ok := b.(string)
		return ok && at == bt
	case bool:
		bt, ok := b.(bool)
		return ok && at == bt
	case map[string]any:
		bt, ok := b.(map[string]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for k, av := range at {
			bv, ok := bt[k]
			if !ok || !valuesEqual(av, bv) {
				return false
			}
		}
		return true
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !valuesEqual(at[i], bt[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// containsValue implements the `contains` operator. Four forms:
// mapping ⊇ mapping (recursive subset), sequence ∋ element (equality or
// subset for mapping needles), sequence ⊇ sequence (every needle matched),
// and string substring. Anything else, including absence on either side,
// is false.
func containsValue(haystack, needle any) bool {
	if IsAbsent(haystack) || IsAbsent(needle) {
		return false
	}

	switch h := haystack.(type) {
	case map[string]any:
		n, ok := needle.(map[string]any)
		if !ok {
			return false
		}
		for k, nv := range n {
			hv, ok := h[k]
			if !ok {
				return false
			}
			switch nv.(type) {
			case map[string]any, []any:
				if !containsValue(hv, nv) {
					return false
				}
			default:
				if !valuesEqual(hv, nv) {
					return false
				}
			}
		}
		return true

	case []any:
		if n, ok := needle.([]any); ok {
			for _, item := range n {
				if !sequenceHas(h, item) {
					return false
				}
			}
			return true
		}
		return sequenceHas(h, needle)

	case string:
		n, ok := needle.(string)
		return ok && strings.Contains(h, n)

	default:
		return false
	}
}

func sequenceHas(haystack []any, needle any) bool {
	for _, item := range haystack {
		if _, ok := needle.(map[string]any); ok {
			if containsValue(item, needle) {
				return true
			}
			continue
		}
		if valuesEqual(item, needle) {
			return true
		}
	}
	return false
}

// navigate walks the remaining dotted segments into a nested value.
// Missing keys, bad indexes, and scalar dead ends all resolve absent.
func navigate(v any, segments []string) any {
	for _, seg := range segments {
		switch t := v.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return Absent
			}
			v = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(t) {
				return Absent
			}
			v = t[idx]
		default:
			return Absent
		}
	}
	return v
}
