package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

func TestParsePortMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		out      string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{
			name:     "single mapping",
			out:      "5432/tcp -> 0.0.0.0:49153\n",
			wantHost: "localhost",
			wantPort: 49153,
		},
		{
			name:     "ipv6 host normalized",
			out:      "6379/tcp -> [::]:32768",
			wantHost: "localhost",
			wantPort: 32768,
		},
		{
			name:     "explicit host kept",
			out:      "8080/tcp -> 127.0.0.1:41001",
			wantHost: "127.0.0.1",
			wantPort: 41001,
		},
		{
			name:    "no mappings",
			out:     "\n",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			host, port, err := parsePortMapping(tc.out)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantHost, host)
			require.Equal(t, tc.wantPort, port)
		})
	}
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	p := NewStaticProvider(map[string]Endpoint{
		"postgres": {Host: "db.internal", Port: 5432},
	})

	ep, err := p.Provision(context.Background(), "postgres", "postgres:15")
	require.NoError(t, err)
	require.Equal(t, "db.internal", ep.Host)
	require.Equal(t, 5432, ep.Port)
	require.Equal(t, "postgres://db.internal:5432", ep.URL)

	_, err = p.Provision(context.Background(), "redis", "redis:7")
	var provErr *serrors.ProvisionError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, "redis", provErr.Alias)

	require.NoError(t, p.Teardown(context.Background(), "postgres"))
}

func TestFakeProviderRecordsCalls(t *testing.T) {
	t.Parallel()

	p := NewFakeProvider()

	ep, err := p.Provision(context.Background(), "postgres", "postgres:15")
	require.NoError(t, err)
	require.Equal(t, "localhost", ep.Host)
	require.NotZero(t, ep.Port)
	require.Contains(t, ep.URL, "postgres://localhost:")

	require.NoError(t, p.Teardown(context.Background(), "postgres"))
	require.Equal(t, []string{"postgres"}, p.Provisioned)
	require.Equal(t, []string{"postgres"}, p.TornDown)
}

func TestFakeProviderForcedFailure(t *testing.T) {
	t.Parallel()

	p := NewFakeProvider()
	p.FailAlias = "postgres"

	_, err := p.Provision(context.Background(), "postgres", "postgres:15")
	var provErr *serrors.ProvisionError
	require.ErrorAs(t, err, &provErr)
}
