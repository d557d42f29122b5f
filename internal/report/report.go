// Package report renders run results to a console. Output is styled
// when the destination is a terminal and plain otherwise, so CI logs
// stay free of escape sequences.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/alexisbeaulieu97/stagehand/internal/model"
)

// Reporter writes one run's results to out.
type Reporter struct {
	out     io.Writer
	colored bool
}

// Options configures a Reporter.
type Options struct {
	// NoColor disables styling even when out is a terminal.
	NoColor bool
	// ForceColor enables styling regardless of the destination.
	ForceColor bool
}

// New creates a Reporter writing to out.
func New(out io.Writer, opts Options) *Reporter {
	colored := opts.ForceColor
	if !colored && !opts.NoColor {
		colored = isTerminal(out)
	}
	return &Reporter{out: out, colored: colored}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Reporter) render(st style, text string) string {
	if !r.colored {
		return text
	}
	return st.Render(text)
}

// Print writes the full per-feature, per-scenario, per-step breakdown
// followed by the aggregate summary.
func (r *Reporter) Print(run model.RunResult) {
	for i, feature := range run.Features {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		r.printFeature(feature)
	}
	fmt.Fprintln(r.out)
	r.Summarize(run)
}

func (r *Reporter) printFeature(feature model.FeatureResult) {
	fmt.Fprintf(r.out, "%s %s\n",
		r.render(headerStyle, "Feature:"),
		r.render(headerStyle, feature.Name))

	if feature.SetupErr != nil {
		fmt.Fprintf(r.out, "  %s setup failed: %v\n",
			r.render(failureStyle, crossMark), feature.SetupErr)
		return
	}

	for _, scenario := range feature.Scenarios {
		r.printScenario(scenario)
	}
}

func (r *Reporter) printScenario(scenario model.ScenarioResult) {
	mark := r.render(successStyle, checkMark)
	if !scenario.Passed() {
		mark = r.render(failureStyle, crossMark)
	}
	fmt.Fprintf(r.out, "  %s %s %s\n", mark, scenario.Name,
		r.render(durationStyle, formatDuration(scenario.Duration)))

	for _, step := range scenario.Steps {
		r.printStep(step)
	}
}

func (r *Reporter) printStep(step model.StepOutcome) {
	switch {
	case step.Skipped():
		fmt.Fprintf(r.out, "      %s %s\n",
			r.render(skippedStyle, skipMark),
			r.render(skippedStyle, step.Name+" (skipped)"))
	case step.Failed():
		fmt.Fprintf(r.out, "      %s %s %s %v\n",
			r.render(failureStyle, crossMark), step.Name,
			r.render(failureStyle, "["+string(step.FailureKind)+"]"), step.Err)
	default:
		fmt.Fprintf(r.out, "      %s %s\n", r.render(successStyle, checkMark), step.Name)
	}
}

// Summarize writes the aggregate pass/fail counts and verdict.
func (r *Reporter) Summarize(run model.RunResult) {
	scenarios := run.TotalScenarios()
	scenariosPassed := run.TotalScenariosPassed()
	passed, failed, skipped := run.TotalSteps()

	fmt.Fprintf(r.out, "%d scenarios: %d passed, %d failed\n",
		scenarios, scenariosPassed, scenarios-scenariosPassed)
	fmt.Fprintf(r.out, "%d steps: %d passed, %d failed, %d skipped\n",
		passed+failed+skipped, passed, failed, skipped)

	if run.Passed() {
		fmt.Fprintln(r.out, r.render(successStyle, "PASS"))
	} else {
		fmt.Fprintln(r.out, r.render(failureStyle, "FAIL"))
	}
}

func formatDuration(d time.Duration) string {
	return "(" + d.Round(time.Millisecond).String() + ")"
}
