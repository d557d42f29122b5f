package main

import (
	"github.com/alexisbeaulieu97/stagehand/internal/registry"
	assertsteps "github.com/alexisbeaulieu97/stagehand/internal/steps/assert"
	coresteps "github.com/alexisbeaulieu97/stagehand/internal/steps/core"
	randomsteps "github.com/alexisbeaulieu97/stagehand/internal/steps/random"
)

// newBuiltinRegistry builds the registry with every built-in step family
// bound. Embedders wire their own domain handlers on top of these.
func newBuiltinRegistry() (*registry.Registry, error) {
	r := registry.New()
	for _, register := range []func(*registry.Registry) error{
		coresteps.Register,
		randomsteps.Register,
		assertsteps.Register,
	} {
		if err := register(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}
