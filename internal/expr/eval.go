// Package expr resolves ${{ ... }} templates against a layered runtime
// context and evaluates comparison and subset-matching predicates.
// Evaluation is pure: the same template against the same context always
// yields the same result.
package expr

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

const (
	openDelim  = "${{"
	closeDelim = "}}"
)

// operators in match order. Two-character forms come before their
// one-character prefixes so `>=` is never read as `>` followed by `=`.
var operators = []string{" contains ", "==", "!=", ">=", "<=", ">", "<"}

type span struct {
	start int
	end   int
	inner string
}

func findSpans(template string) ([]span, error) {
	var spans []span
	i := 0
	for {
		rel := strings.Index(template[i:], openDelim)
		if rel < 0 {
			break
		}
		start := i + rel
		innerStart := start + len(openDelim)
		closing := strings.Index(template[innerStart:], closeDelim)
		if closing < 0 {
			return nil, serrors.NewExpressionError(template, "unterminated ${{ }} span")
		}
		end := innerStart + closing + len(closeDelim)
		spans = append(spans, span{
			start: start,
			end:   end,
			inner: strings.TrimSpace(template[innerStart : innerStart+closing]),
		})
		i = end
	}
	return spans, nil
}

// Resolve evaluates a template string. A template with no spans is a
// plain literal. When the whole string is exactly one span the resolved
// value keeps its native type; otherwise span values are stringified and
// concatenated with the surrounding literal text.
func Resolve(template string, ctx *Context) (any, error) {
	spans, err := findSpans(template)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return template, nil
	}
	if len(spans) == 1 && spans[0].start == 0 && spans[0].end == len(template) {
		return evalExpr(spans[0].inner, ctx)
	}

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(template[last:sp.start])
		v, err := evalExpr(sp.inner, ctx)
		if err != nil {
			return nil, err
		}
		b.WriteString(Stringify(v))
		last = sp.end
	}
	b.WriteString(template[last:])
	return b.String(), nil
}

// ResolveValue resolves template strings nested anywhere inside a decoded
// YAML value: strings are resolved, maps and slices recurse, everything
// else passes through untouched.
func ResolveValue(v any, ctx *Context) (any, error) {
	switch t := v.(type) {
	case string:
		return Resolve(t, ctx)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			resolved, err := ResolveValue(item, ctx)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			resolved, err := ResolveValue(item, ctx)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

// Assert evaluates an assertion template. The template must be exactly
// one ${{ }} span and must resolve to a boolean.
func Assert(template string, ctx *Context) (bool, error) {
	spans, err := findSpans(template)
	if err != nil {
		return false, err
	}
	if len(spans) != 1 ||
		strings.TrimSpace(template[:spans[0].start]) != "" ||
		strings.TrimSpace(template[spans[0].end:]) != "" {
		return false, serrors.NewExpressionError(template, "assertion must be a single ${{ }} expression")
	}

	v, err := evalExpr(spans[0].inner, ctx)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, serrors.NewExpressionError(template, fmt.Sprintf("assertion resolved to %T, want boolean", v))
	}
	return b, nil
}

func evalExpr(inner string, ctx *Context) (any, error) {
	if inner == "" {
		return nil, serrors.NewExpressionError(inner, "empty expression")
	}

	for _, op := range operators {
		pos := findOperator(inner, op)
		if pos < 0 {
			continue
		}
		leftRaw := strings.TrimSpace(inner[:pos])
		rightRaw := strings.TrimSpace(inner[pos+len(op):])
		if leftRaw == "" || rightRaw == "" {
			return nil, serrors.NewExpressionError(inner, fmt.Sprintf("operator %s is missing an operand", strings.TrimSpace(op)))
		}
		left, err := evalOperand(leftRaw, ctx)
		if err != nil {
			return nil, err
		}
		right, err := evalOperand(rightRaw, ctx)
		if err != nil {
			return nil, err
		}
		return compare(inner, left, right, strings.TrimSpace(op))
	}

	return evalOperand(inner, ctx)
}

// findOperator locates op at the top level of the expression, skipping
// occurrences inside quoted strings and object or array literals.
func findOperator(s, op string) int {
	depth := 0
	inString := false
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if c == quote && s[i-1] != '\\' {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
			continue
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		}
		if depth == 0 && i+len(op) <= len(s) && s[i:i+len(op)] == op {
			return i
		}
	}
	return -1
}

func evalOperand(raw string, ctx *Context) (any, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}

	switch raw[0] {
	case '{', '[':
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, serrors.NewExpressionError(raw, fmt.Sprintf("invalid literal: %v", err))
		}
		return v, nil
	case '"', '\'':
		return unquote(raw)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}

	return resolvePath(raw, ctx)
}

func unquote(raw string) (any, error) {
	if len(raw) < 2 || raw[len(raw)-1] != raw[0] {
		return nil, serrors.NewExpressionError(raw, "unterminated string literal")
	}
	if raw[0] == '"' {
		if s, err := strconv.Unquote(raw); err == nil {
			return s, nil
		}
	}
	body := raw[1 : len(raw)-1]
	return strings.ReplaceAll(body, `\`+string(raw[0]), string(raw[0])), nil
}

func resolvePath(path string, ctx *Context) (any, error) {
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, serrors.NewExpressionError(path, "empty path segment")
		}
	}

	switch segments[0] {
	case "env":
		if len(segments) == 1 {
			return nil, serrors.NewExpressionError(path, "env requires a variable name")
		}
		v, ok := ctx.env[segments[1]]
		if !ok || len(segments) > 2 {
			return Absent, nil
		}
		return v, nil

	case "steps":
		if len(segments) < 3 || segments[2] != "outputs" {
			return nil, serrors.NewExpressionError(path, "step references take the form steps.<id>.outputs[.<field>]")
		}
		out, ok := ctx.steps[segments[1]]
		if !ok {
			return Absent, nil
		}
		return navigate(any(out), segments[3:]), nil

	case "containers":
		if len(segments) == 1 {
			return nil, serrors.NewExpressionError(path, "containers requires an alias")
		}
		ep, ok := ctx.containers[segments[1]]
		if !ok {
			return Absent, nil
		}
		fields := map[string]any{"host": ep.Host, "port": ep.Port, "url": ep.URL}
		return navigate(any(fields), segments[2:]), nil

	case "outputs":
		if !ctx.hasOutputs {
			return nil, serrors.NewExpressionError(path, "outputs is only available in post-assertions")
		}
		return navigate(any(ctx.outputs), segments[1:]), nil

	default:
		return nil, serrors.NewExpressionError(path, fmt.Sprintf("unknown namespace %q", segments[0]))
	}
}

func compare(exprStr string, left, right any, op string) (any, error) {
	switch op {
	case "==":
		return valuesEqual(left, right), nil
	case "!=":
		return !valuesEqual(left, right), nil
	case "contains":
		return containsValue(left, right), nil
	}

	lf, lok := orderedOperand(left)
	rf, rok := orderedOperand(right)
	if !lok || !rok {
		return nil, serrors.NewExpressionError(exprStr, fmt.Sprintf("operator %s requires numeric operands", op))
	}
	switch op {
	case ">":
		return lf > rf, nil
	case "<":
		return lf < rf, nil
	case ">=":
		return lf >= rf, nil
	case "<=":
		return lf <= rf, nil
	}
	return nil, serrors.NewExpressionError(exprStr, fmt.Sprintf("unknown operator %s", op))
}
