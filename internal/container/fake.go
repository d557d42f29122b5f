package container

import (
	"context"
	"fmt"
	"sync"

	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

// FakeProvider is an in-memory provider for tests. It fabricates
// endpoints with ascending ports and records every call.
type FakeProvider struct {
	// FailAlias, when set, makes Provision fail for that alias.
	FailAlias string
	// TeardownErr, when set, is returned from every Teardown call.
	TeardownErr error

	mu          sync.Mutex
	nextPort    int
	Provisioned []string
	TornDown    []string
}

// NewFakeProvider constructs an empty fake.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{nextPort: 30000}
}

// Provision fabricates a deterministic endpoint for alias.
func (p *FakeProvider) Provision(_ context.Context, alias, image string) (Endpoint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if alias == p.FailAlias {
		return Endpoint{}, serrors.NewProvisionError(alias, image, fmt.Errorf("forced failure"))
	}

	p.nextPort++
	p.Provisioned = append(p.Provisioned, alias)
	return Endpoint{
		Host: "localhost",
		Port: p.nextPort,
		URL:  fmt.Sprintf("%s://localhost:%d", alias, p.nextPort),
	}, nil
}

// Teardown records the call and returns TeardownErr if configured.
func (p *FakeProvider) Teardown(_ context.Context, alias string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.TornDown = append(p.TornDown, alias)
	return p.TeardownErr
}
