// Package randomsteps exposes the scenario's deterministic entropy
// source as workflow steps. The same scenario name always yields the
// same values, so generated data is reproducible across runs.
package randomsteps

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/stagehand/internal/registry"
)

type stringArgs struct {
	Length int `mapstructure:"length"`
}

type valueOutput struct {
	Value string `json:"value"`
}

// Register binds the random step family onto r.
func Register(r *registry.Registry) error {
	if err := r.Register("random/string", registry.Typed(randomString)); err != nil {
		return err
	}
	if err := r.Register("random/hex", registry.Typed(randomHex)); err != nil {
		return err
	}
	return r.Register("random/uuid", registry.Typed(randomUUID))
}

func randomString(_ context.Context, inv *registry.Invocation, args stringArgs) (valueOutput, error) {
	if args.Length <= 0 {
		return valueOutput{}, fmt.Errorf("length must be positive, got %d", args.Length)
	}
	return valueOutput{Value: inv.Rand.NextString(args.Length)}, nil
}

func randomHex(_ context.Context, inv *registry.Invocation, args stringArgs) (valueOutput, error) {
	if args.Length <= 0 {
		return valueOutput{}, fmt.Errorf("length must be positive, got %d", args.Length)
	}
	return valueOutput{Value: inv.Rand.NextHex(args.Length)}, nil
}

func randomUUID(_ context.Context, inv *registry.Invocation, _ struct{}) (valueOutput, error) {
	return valueOutput{Value: inv.Rand.NextUUID().String()}, nil
}
