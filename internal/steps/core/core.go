// Package coresteps provides the general-purpose built-in steps every
// workflow can use without registering custom handlers.
package coresteps

import (
	"context"
	"errors"
	"time"

	"github.com/alexisbeaulieu97/stagehand/internal/registry"
)

type failArgs struct {
	Message string `mapstructure:"message"`
}

type sleepArgs struct {
	Duration string `mapstructure:"duration"`
}

type sleepOutput struct {
	Elapsed string `json:"elapsed"`
}

// Register binds the core step family onto r.
func Register(r *registry.Registry) error {
	if err := r.Register("core/echo", echo); err != nil {
		return err
	}
	if err := r.Register("core/fail", registry.Typed(fail)); err != nil {
		return err
	}
	return r.Register("core/sleep", registry.Typed(sleep))
}

// echo returns its resolved arguments as outputs, which makes resolved
// values addressable by later steps and assertions.
func echo(_ context.Context, inv *registry.Invocation) (map[string]any, error) {
	return inv.Args, nil
}

func fail(_ context.Context, _ *registry.Invocation, args failArgs) (struct{}, error) {
	msg := args.Message
	if msg == "" {
		msg = "step failed intentionally"
	}
	return struct{}{}, errors.New(msg)
}

// sleep advances the virtual clock instead of blocking, so scenarios
// exercising time-dependent behavior finish instantly.
func sleep(_ context.Context, inv *registry.Invocation, args sleepArgs) (sleepOutput, error) {
	d, err := time.ParseDuration(args.Duration)
	if err != nil {
		return sleepOutput{}, err
	}
	inv.Clock.Advance(d)
	return sleepOutput{Elapsed: inv.Clock.Current().String()}, nil
}
