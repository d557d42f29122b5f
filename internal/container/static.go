package container

import (
	"context"
	"fmt"

	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

// StaticProvider maps aliases to pre-existing endpoints, for runs against
// services something else already started (CI service containers, local
// daemons). Teardown is a no-op.
type StaticProvider struct {
	Endpoints map[string]Endpoint
}

// NewStaticProvider constructs a provider over a fixed endpoint map.
func NewStaticProvider(endpoints map[string]Endpoint) *StaticProvider {
	return &StaticProvider{Endpoints: endpoints}
}

// Provision returns the configured endpoint for alias; the image is ignored.
func (p *StaticProvider) Provision(_ context.Context, alias, image string) (Endpoint, error) {
	ep, ok := p.Endpoints[alias]
	if !ok {
		return Endpoint{}, serrors.NewProvisionError(alias, image, fmt.Errorf("no static endpoint configured"))
	}
	if ep.URL == "" {
		ep.URL = fmt.Sprintf("%s://%s:%d", alias, ep.Host, ep.Port)
	}
	return ep, nil
}

// Teardown does nothing; static endpoints are not owned by the run.
func (p *StaticProvider) Teardown(context.Context, string) error {
	return nil
}
