// Package container defines the boundary to the auxiliary service
// provider: starting, addressing, and tearing down the containers a
// workflow declares.
package container

import (
	"context"

	"github.com/alexisbeaulieu97/stagehand/internal/expr"
)

// Endpoint aliases the expression engine's endpoint shape; the values a
// provider returns are exactly what templates see under containers.*.
type Endpoint = expr.Endpoint

// Provider provisions and tears down auxiliary service containers.
// Provision failures are fatal to the enclosing feature; teardown is
// best-effort and its errors are only logged.
type Provider interface {
	Provision(ctx context.Context, alias, image string) (Endpoint, error)
	Teardown(ctx context.Context, alias string) error
}
