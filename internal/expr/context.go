package expr

import (
	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

// Endpoint describes a provisioned container's reachable address.
type Endpoint struct {
	Host string
	Port int
	URL  string
}

// Context is the layered resolution store templates evaluate against.
// The env and container namespaces are sealed at construction; step
// outputs accumulate as the scenario progresses; the current step's own
// outputs appear only in the augmented view returned by WithOutputs.
type Context struct {
	env        map[string]string
	containers map[string]Endpoint
	steps      map[string]map[string]any
	outputs    map[string]any
	hasOutputs bool
}

// NewContext seeds a scenario-scoped context with the read-only
// environment and container namespaces. Both maps are copied.
func NewContext(env map[string]string, containers map[string]Endpoint) *Context {
	envCopy := make(map[string]string, len(env))
	for k, v := range env {
		envCopy[k] = v
	}
	containerCopy := make(map[string]Endpoint, len(containers))
	for k, v := range containers {
		containerCopy[k] = v
	}
	return &Context{
		env:        envCopy,
		containers: containerCopy,
		steps:      make(map[string]map[string]any),
	}
}

// RecordOutput makes a completed step's outputs visible to later steps
// under its declared identifier. Recording the same id twice is an error;
// outputs only accumulate, they are never replaced.
func (c *Context) RecordOutput(id string, outputs map[string]any) error {
	if _, exists := c.steps[id]; exists {
		return serrors.NewDuplicateOutputError(id)
	}
	if outputs == nil {
		outputs = map[string]any{}
	}
	c.steps[id] = outputs
	return nil
}

// HasOutput reports whether an output was recorded under id.
func (c *Context) HasOutput(id string) bool {
	_, ok := c.steps[id]
	return ok
}

// WithOutputs returns the augmented view used during a step's
// post-assertion phase, exposing the step's own outputs under the
// reserved `outputs` namespace. The view shares the underlying maps; it
// is discarded after the assertion phase.
func (c *Context) WithOutputs(outputs map[string]any) *Context {
	if outputs == nil {
		outputs = map[string]any{}
	}
	view := *c
	view.outputs = outputs
	view.hasOutputs = true
	return &view
}
