package engine

import (
	"context"
	"sort"
	"time"

	"github.com/alexisbeaulieu97/stagehand/internal/config"
	"github.com/alexisbeaulieu97/stagehand/internal/expr"
	"github.com/alexisbeaulieu97/stagehand/internal/model"
)

// runFeature provisions the workflow's declared containers, runs its
// scenarios sequentially, and always attempts teardown afterwards.
func (r *Runner) runFeature(ctx context.Context, wf *config.Workflow) (result model.FeatureResult) {
	start := time.Now()
	log := r.log.With("feature", wf.Name)
	log.Info("feature started")

	result.Name = wf.Name

	aliases := make([]string, 0, len(wf.Containers))
	for alias := range wf.Containers {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	// The endpoint map is built once, before any scenario executes, and
	// shared read-only across all scenarios in the feature.
	endpoints := make(map[string]expr.Endpoint, len(aliases))
	var provisioned []string
	defer func() {
		for _, alias := range provisioned {
			if err := r.provider.Teardown(ctx, alias); err != nil {
				log.Error(err, "container teardown failed")
			}
		}
		result.Duration = time.Since(start)
	}()

	for _, alias := range aliases {
		ep, err := r.provider.Provision(ctx, alias, wf.Containers[alias])
		if err != nil {
			log.Error(err, "container provisioning failed")
			result.SetupErr = err
			return result
		}
		provisioned = append(provisioned, alias)
		log.WithFields(map[string]any{"container": alias, "url": ep.URL}).Debug("container provisioned")
		endpoints[alias] = ep
	}

	for i := range wf.Scenarios {
		result.Scenarios = append(result.Scenarios, r.runScenario(ctx, &wf.Scenarios[i], wf.Env, endpoints))
	}
	return result
}
