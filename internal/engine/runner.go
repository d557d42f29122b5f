// Package engine executes loaded workflows: it provisions declared
// containers, walks each scenario's steps in order, resolves arguments
// and assertions through the expression engine, dispatches to registered
// handlers, and aggregates outcomes for reporting.
package engine

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/stagehand/internal/clock"
	"github.com/alexisbeaulieu97/stagehand/internal/config"
	"github.com/alexisbeaulieu97/stagehand/internal/container"
	"github.com/alexisbeaulieu97/stagehand/internal/logger"
	"github.com/alexisbeaulieu97/stagehand/internal/model"
	"github.com/alexisbeaulieu97/stagehand/internal/registry"
)

// Options configures a Runner.
type Options struct {
	Registry *registry.Registry
	Provider container.Provider
	Clock    *clock.Clock
	Log      *logger.Logger
	World    WorldFactory
	Hooks    Hooks
}

// Runner executes workflows sequentially. One Runner owns one virtual
// clock; build a fresh Runner per run.
type Runner struct {
	registry *registry.Registry
	provider container.Provider
	clock    *clock.Clock
	log      *logger.Logger
	world    WorldFactory
	hooks    Hooks
}

// New validates options and constructs a Runner.
func New(opts Options) (*Runner, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("engine: registry is required")
	}

	r := &Runner{
		registry: opts.Registry,
		provider: opts.Provider,
		clock:    opts.Clock,
		log:      opts.Log,
		world:    opts.World,
		hooks:    opts.Hooks,
	}
	if r.provider == nil {
		r.provider = container.NewDockerProvider()
	}
	if r.clock == nil {
		r.clock = clock.New()
	}
	if r.log == nil {
		r.log = logger.Discard()
	}
	if r.world == nil {
		r.world = func(context.Context) (any, error) { return nil, nil }
	}
	return r, nil
}

// Clock exposes the run's virtual clock, mainly for callers that want to
// assert on simulated time after a run.
func (r *Runner) Clock() *clock.Clock {
	return r.clock
}

// Run executes every workflow in order. Per-step failures are captured
// in the result, never returned; the returned error is non-nil only for
// an unrecoverable setup failure (container provisioning), which aborts
// the remaining features. Results collected up to that point are still
// returned for reporting.
func (r *Runner) Run(ctx context.Context, workflows []*config.Workflow) (model.RunResult, error) {
	var run model.RunResult

	r.hooks.runBeforeAll(ctx)
	defer r.hooks.runAfterAll(ctx)

	for _, wf := range workflows {
		result := r.runFeature(ctx, wf)
		run.Features = append(run.Features, result)
		if result.SetupErr != nil {
			return run, result.SetupErr
		}
	}
	return run, nil
}
