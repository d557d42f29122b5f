// Package assertsteps provides handler-level assertions for cases where
// template assertions get unwieldy, such as comparing whole resolved
// structures.
package assertsteps

import (
	"context"
	"fmt"
	"reflect"

	"github.com/alexisbeaulieu97/stagehand/internal/expr"
	"github.com/alexisbeaulieu97/stagehand/internal/registry"
)

type equalArgs struct {
	Left  any `mapstructure:"left"`
	Right any `mapstructure:"right"`
}

type notEmptyArgs struct {
	Value any `mapstructure:"value"`
}

// Register binds the assert step family onto r.
func Register(r *registry.Registry) error {
	if err := r.Register("assert/equal", registry.Typed(equal)); err != nil {
		return err
	}
	return r.Register("assert/not-empty", registry.Typed(notEmpty))
}

func equal(_ context.Context, _ *registry.Invocation, args equalArgs) (struct{}, error) {
	if !reflect.DeepEqual(args.Left, args.Right) {
		return struct{}{}, fmt.Errorf("values differ: %v != %v", args.Left, args.Right)
	}
	return struct{}{}, nil
}

func notEmpty(_ context.Context, _ *registry.Invocation, args notEmptyArgs) (struct{}, error) {
	if isEmpty(args.Value) {
		return struct{}{}, fmt.Errorf("value is empty")
	}
	return struct{}{}, nil
}

func isEmpty(v any) bool {
	if v == nil || expr.IsAbsent(v) {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
