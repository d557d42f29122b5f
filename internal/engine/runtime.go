package engine

import (
	"context"

	"github.com/alexisbeaulieu97/stagehand/internal/clock"
	"github.com/alexisbeaulieu97/stagehand/internal/config"
	"github.com/alexisbeaulieu97/stagehand/internal/logger"
	"github.com/alexisbeaulieu97/stagehand/internal/model"
	"github.com/alexisbeaulieu97/stagehand/internal/random"
)

// Runtime is the execution environment handed to handlers for one
// scenario: the mutable world, the scenario's entropy source, the run's
// shared virtual clock, and a logger scoped to the scenario.
type Runtime struct {
	World any
	Rand  *random.Source
	Clock *clock.Clock
	Log   *logger.Logger
}

// WorldFactory builds the mutable world state for one scenario. Each
// scenario gets a fresh world; a factory error fails the scenario before
// any step runs.
type WorldFactory func(ctx context.Context) (any, error)

// Hooks are optional callbacks around run, scenario, and step
// boundaries. All slices run in registration order.
type Hooks struct {
	BeforeAll      []func(ctx context.Context)
	AfterAll       []func(ctx context.Context)
	BeforeScenario []func(ctx context.Context, rt *Runtime)
	AfterScenario  []func(ctx context.Context, rt *Runtime)
	BeforeStep     []func(ctx context.Context, rt *Runtime, step *config.Step)
	AfterStep      []func(ctx context.Context, rt *Runtime, step *config.Step, outcome model.StepOutcome)
}

func (h Hooks) runBeforeAll(ctx context.Context) {
	for _, fn := range h.BeforeAll {
		fn(ctx)
	}
}

func (h Hooks) runAfterAll(ctx context.Context) {
	for _, fn := range h.AfterAll {
		fn(ctx)
	}
}

func (h Hooks) runBeforeScenario(ctx context.Context, rt *Runtime) {
	for _, fn := range h.BeforeScenario {
		fn(ctx, rt)
	}
}

func (h Hooks) runAfterScenario(ctx context.Context, rt *Runtime) {
	for _, fn := range h.AfterScenario {
		fn(ctx, rt)
	}
}

func (h Hooks) runBeforeStep(ctx context.Context, rt *Runtime, step *config.Step) {
	for _, fn := range h.BeforeStep {
		fn(ctx, rt, step)
	}
}

func (h Hooks) runAfterStep(ctx context.Context, rt *Runtime, step *config.Step, outcome model.StepOutcome) {
	for _, fn := range h.AfterStep {
		fn(ctx, rt, step, outcome)
	}
}
