package model

import (
	"time"
)

const (
	// StatusPassed marks a step whose full phase sequence succeeded.
	StatusPassed = "passed"
	// StatusFailed marks a step that failed in any phase.
	StatusFailed = "failed"
	// StatusSkipped marks a step never reached because an earlier step failed.
	StatusSkipped = "skipped"
)

// FailureKind identifies which phase of the step state machine failed, so
// reports can distinguish violated behavior from violated expectations.
type FailureKind string

const (
	FailureNone         FailureKind = ""
	FailureExpression   FailureKind = "expression"
	FailureAssertBefore FailureKind = "assert-before"
	FailureAssertAfter  FailureKind = "assert-after"
	FailureArgument     FailureKind = "argument"
	FailureHandler      FailureKind = "handler"
	FailureLookup       FailureKind = "lookup"
	FailureRecord       FailureKind = "record"
)

// StepOutcome captures the outcome of executing a single step. Produced
// once per step and never mutated afterwards.
type StepOutcome struct {
	Name        string
	ID          string
	Status      string
	Output      map[string]any
	FailureKind FailureKind
	Err         error
	Duration    time.Duration
}

// Passed reports whether the step completed all phases.
func (o StepOutcome) Passed() bool {
	return o.Status == StatusPassed
}

// Failed reports whether the step failed in any phase.
func (o StepOutcome) Failed() bool {
	return o.Status == StatusFailed
}

// Skipped reports whether the step was never invoked.
func (o StepOutcome) Skipped() bool {
	return o.Status == StatusSkipped
}

// ScenarioResult rolls up one scenario's step outcomes.
type ScenarioResult struct {
	Name     string
	Steps    []StepOutcome
	Duration time.Duration
}

// Passed reports whether every step in the scenario passed. Skipped steps
// only occur downstream of a failure, so any non-passed step fails the
// scenario.
func (r ScenarioResult) Passed() bool {
	for _, s := range r.Steps {
		if !s.Passed() {
			return false
		}
	}
	return true
}

// StepsPassed counts passed steps.
func (r ScenarioResult) StepsPassed() int {
	n := 0
	for _, s := range r.Steps {
		if s.Passed() {
			n++
		}
	}
	return n
}

// StepsFailed counts failed steps.
func (r ScenarioResult) StepsFailed() int {
	n := 0
	for _, s := range r.Steps {
		if s.Failed() {
			n++
		}
	}
	return n
}

// StepsSkipped counts skipped steps.
func (r ScenarioResult) StepsSkipped() int {
	n := 0
	for _, s := range r.Steps {
		if s.Skipped() {
			n++
		}
	}
	return n
}

// FeatureResult rolls up one workflow file's scenario results. SetupErr
// records a provisioning failure that prevented scenarios from running.
type FeatureResult struct {
	Name      string
	Scenarios []ScenarioResult
	Duration  time.Duration
	SetupErr  error
}

// Passed reports whether the feature set up cleanly and every scenario passed.
func (r FeatureResult) Passed() bool {
	if r.SetupErr != nil {
		return false
	}
	for _, s := range r.Scenarios {
		if !s.Passed() {
			return false
		}
	}
	return true
}

// ScenariosPassed counts passing scenarios.
func (r FeatureResult) ScenariosPassed() int {
	n := 0
	for _, s := range r.Scenarios {
		if s.Passed() {
			n++
		}
	}
	return n
}

// ScenariosFailed counts failing scenarios.
func (r FeatureResult) ScenariosFailed() int {
	return len(r.Scenarios) - r.ScenariosPassed()
}

// RunResult aggregates every feature in a run.
type RunResult struct {
	Features []FeatureResult
}

// Passed reports whether the whole run succeeded; this drives the
// process exit status.
func (r RunResult) Passed() bool {
	for _, f := range r.Features {
		if !f.Passed() {
			return false
		}
	}
	return true
}

// TotalScenarios counts scenarios across all features.
func (r RunResult) TotalScenarios() int {
	n := 0
	for _, f := range r.Features {
		n += len(f.Scenarios)
	}
	return n
}

// TotalScenariosPassed counts passing scenarios across all features.
func (r RunResult) TotalScenariosPassed() int {
	n := 0
	for _, f := range r.Features {
		n += f.ScenariosPassed()
	}
	return n
}

// TotalSteps counts step outcomes across all features.
func (r RunResult) TotalSteps() (passed, failed, skipped int) {
	for _, f := range r.Features {
		for _, s := range f.Scenarios {
			passed += s.StepsPassed()
			failed += s.StepsFailed()
			skipped += s.StepsSkipped()
		}
	}
	return passed, failed, skipped
}
