package container

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

// DockerProvider runs containers through the docker CLI with all exposed
// ports published to ephemeral host ports.
type DockerProvider struct {
	// Binary overrides the docker executable name, mainly for tests.
	Binary string

	mu  sync.Mutex
	ids map[string]string
}

// NewDockerProvider constructs a provider that shells out to `docker`.
func NewDockerProvider() *DockerProvider {
	return &DockerProvider{Binary: "docker", ids: make(map[string]string)}
}

func (p *DockerProvider) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "docker"
}

// Provision starts the image detached with published ports and resolves
// the first mapped port as the endpoint.
func (p *DockerProvider) Provision(ctx context.Context, alias, image string) (Endpoint, error) {
	runCmd := exec.CommandContext(ctx, p.binary(), "run", "--detach", "--publish-all", image)
	out, err := runCmd.CombinedOutput()
	if err != nil {
		return Endpoint{}, serrors.NewProvisionError(alias, image, fmt.Errorf("docker run: %v: %s", err, strings.TrimSpace(string(out))))
	}
	id := strings.TrimSpace(string(out))

	p.mu.Lock()
	if p.ids == nil {
		p.ids = make(map[string]string)
	}
	p.ids[alias] = id
	p.mu.Unlock()

	portCmd := exec.CommandContext(ctx, p.binary(), "port", id)
	out, err = portCmd.CombinedOutput()
	if err != nil {
		return Endpoint{}, serrors.NewProvisionError(alias, image, fmt.Errorf("docker port: %v: %s", err, strings.TrimSpace(string(out))))
	}

	host, port, err := parsePortMapping(string(out))
	if err != nil {
		return Endpoint{}, serrors.NewProvisionError(alias, image, err)
	}

	return Endpoint{
		Host: host,
		Port: port,
		URL:  fmt.Sprintf("%s://%s:%d", alias, host, port),
	}, nil
}

// Teardown force-removes the container started for alias.
func (p *DockerProvider) Teardown(ctx context.Context, alias string) error {
	p.mu.Lock()
	id, ok := p.ids[alias]
	delete(p.ids, alias)
	p.mu.Unlock()

	if !ok {
		return nil
	}

	out, err := exec.CommandContext(ctx, p.binary(), "rm", "--force", id).CombinedOutput()
	if err != nil {
		return fmt.Errorf("docker rm %s: %v: %s", alias, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// parsePortMapping extracts the first host mapping from `docker port`
// output, e.g. "5432/tcp -> 0.0.0.0:49153".
func parsePortMapping(out string) (string, int, error) {
	for _, line := range strings.Split(out, "\n") {
		_, mapping, found := strings.Cut(line, "->")
		if !found {
			continue
		}
		hostPort := strings.TrimSpace(mapping)
		idx := strings.LastIndex(hostPort, ":")
		if idx < 0 {
			continue
		}
		host := hostPort[:idx]
		port, err := strconv.Atoi(hostPort[idx+1:])
		if err != nil {
			continue
		}
		if host == "0.0.0.0" || host == "::" || host == "[::]" {
			host = "localhost"
		}
		return host, port, nil
	}
	return "", 0, fmt.Errorf("no published ports found in %q", strings.TrimSpace(out))
}
