package engine

import (
	"context"
	"errors"
	"time"

	"github.com/alexisbeaulieu97/stagehand/internal/config"
	"github.com/alexisbeaulieu97/stagehand/internal/expr"
	"github.com/alexisbeaulieu97/stagehand/internal/model"
	"github.com/alexisbeaulieu97/stagehand/internal/random"
	"github.com/alexisbeaulieu97/stagehand/internal/registry"
	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

// runScenario executes one scenario's steps in declared order. The
// entropy source is seeded by the scenario name and the resolution
// context is fresh, so scenarios never observe each other's outputs.
func (r *Runner) runScenario(ctx context.Context, scenario *config.Scenario, env map[string]string, endpoints map[string]expr.Endpoint) model.ScenarioResult {
	start := time.Now()
	log := r.log.With("scenario", scenario.Name)
	log.Info("scenario started")

	result := model.ScenarioResult{Name: scenario.Name}

	world, err := r.world(ctx)
	if err != nil {
		log.Error(err, "world construction failed")
		for i := range scenario.Steps {
			result.Steps = append(result.Steps, model.StepOutcome{
				Name:        scenario.Steps[i].DisplayName(),
				ID:          scenario.Steps[i].ID,
				Status:      model.StatusSkipped,
				FailureKind: model.FailureNone,
			})
		}
		if len(result.Steps) > 0 {
			first := &result.Steps[0]
			first.Status = model.StatusFailed
			first.FailureKind = model.FailureHandler
			first.Err = serrors.NewExecutionError("", err)
		}
		result.Duration = time.Since(start)
		return result
	}

	rt := &Runtime{
		World: world,
		Rand:  random.NewSource(scenario.Name),
		Clock: r.clock,
		Log:   log,
	}
	ectx := expr.NewContext(env, endpoints)

	r.hooks.runBeforeScenario(ctx, rt)

	skipping := false
	for i := range scenario.Steps {
		step := &scenario.Steps[i]

		if skipping {
			result.Steps = append(result.Steps, model.StepOutcome{
				Name:   step.DisplayName(),
				ID:     step.ID,
				Status: model.StatusSkipped,
			})
			continue
		}

		r.hooks.runBeforeStep(ctx, rt, step)
		outcome := r.runStep(ctx, rt, step, ectx)
		r.hooks.runAfterStep(ctx, rt, step, outcome)

		if outcome.Failed() && !step.ContinueOnError {
			skipping = true
		}
		result.Steps = append(result.Steps, outcome)
	}

	r.hooks.runAfterScenario(ctx, rt)

	result.Duration = time.Since(start)
	if result.Passed() {
		log.Info("scenario passed")
	} else {
		log.Warn("scenario failed")
	}
	return result
}

// runStep drives one step through its phase sequence:
// ResolveArgs, AssertBefore, Invoke, AssertAfter, Record.
func (r *Runner) runStep(ctx context.Context, rt *Runtime, step *config.Step, ectx *expr.Context) model.StepOutcome {
	start := time.Now()

	fail := func(kind model.FailureKind, err error) model.StepOutcome {
		rt.Log.WithFields(map[string]any{"step": step.DisplayName(), "phase": string(kind)}).Error(err, "step failed")
		return model.StepOutcome{
			Name:        step.DisplayName(),
			ID:          step.ID,
			Status:      model.StatusFailed,
			FailureKind: kind,
			Err:         err,
			Duration:    time.Since(start),
		}
	}

	// ResolveArgs: on expression failure the handler is never invoked.
	args := make(map[string]any, len(step.With))
	for key, raw := range step.With {
		resolved, err := expr.ResolveValue(raw, ectx)
		if err != nil {
			return fail(model.FailureExpression, err)
		}
		args[key] = resolved
	}

	// AssertBefore: the step's own outputs do not exist yet, so the base
	// context is used and outputs.* is rejected by the expression engine.
	for _, assertion := range step.AssertBefore {
		ok, err := expr.Assert(assertion, ectx)
		if err != nil {
			return fail(model.FailureAssertBefore, serrors.NewAssertionError(assertion, "", err))
		}
		if !ok {
			return fail(model.FailureAssertBefore, serrors.NewAssertionError(assertion, "evaluated to false", nil))
		}
	}

	// Invoke.
	handler, err := r.registry.Lookup(step.Uses)
	if err != nil {
		return fail(model.FailureLookup, err)
	}

	inv := &registry.Invocation{
		World: rt.World,
		Rand:  rt.Rand,
		Clock: rt.Clock,
		Log:   rt.Log,
		Args:  args,
	}
	output, err := handler(ctx, inv)
	if err != nil {
		var shapeErr *serrors.ArgumentShapeError
		if errors.As(err, &shapeErr) {
			return fail(model.FailureArgument, err)
		}
		return fail(model.FailureHandler, err)
	}
	if output == nil {
		output = map[string]any{}
	}

	// AssertAfter: evaluated against the augmented view exposing this
	// step's own outputs. A falsy assertion fails the step retroactively
	// even though invocation succeeded.
	view := ectx.WithOutputs(output)
	for _, assertion := range step.AssertAfter {
		ok, err := expr.Assert(assertion, view)
		if err != nil {
			return fail(model.FailureAssertAfter, serrors.NewAssertionError(assertion, "", err))
		}
		if !ok {
			return fail(model.FailureAssertAfter, serrors.NewAssertionError(assertion, "evaluated to false", nil))
		}
	}

	// Record: only successful steps publish their outputs.
	if step.ID != "" {
		if err := ectx.RecordOutput(step.ID, output); err != nil {
			return fail(model.FailureRecord, err)
		}
	}

	return model.StepOutcome{
		Name:     step.DisplayName(),
		ID:       step.ID,
		Status:   model.StatusPassed,
		Output:   output,
		Duration: time.Since(start),
	}
}
