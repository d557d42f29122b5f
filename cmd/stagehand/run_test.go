package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stagehand/internal/config"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRunPassingWorkflow(t *testing.T) {
	out, err := executeCmd(t, "run", "testdata/user-management.yaml")
	require.NoError(t, err)
	require.Contains(t, out, "Feature: User Management")
	require.Contains(t, out, "✓ Register a user")
	require.Contains(t, out, "PASS")
}

func TestRunFailingWorkflowExitsNonZero(t *testing.T) {
	out, err := executeCmd(t, "run", "testdata/failing.yaml")
	require.EqualError(t, err, "run failed")
	require.Contains(t, out, "✗ Doomed")
	require.Contains(t, out, "deliberate test failure")
	require.Contains(t, out, "- Never reached (skipped)")
	require.Contains(t, out, "FAIL")
}

func TestRunMultipleFiles(t *testing.T) {
	out, err := executeCmd(t, "run", "testdata/user-management.yaml", "testdata/failing.yaml")
	require.Error(t, err)
	require.Contains(t, out, "Feature: User Management")
	require.Contains(t, out, "Feature: Always Fails")
}

func TestRunEnvOverride(t *testing.T) {
	out, err := executeCmd(t, "run", "--env", "DOMAIN=test.local", "testdata/user-management.yaml")
	require.EqualError(t, err, "run failed")
	require.Contains(t, out, "values differ")
}

func TestRunRejectsMalformedEnvOverride(t *testing.T) {
	_, err := executeCmd(t, "run", "--env", "NOEQUALS", "testdata/user-management.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected KEY=VALUE")
}

func TestRunMissingPath(t *testing.T) {
	_, err := executeCmd(t, "run", "testdata/does-not-exist.yaml")
	require.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Parallel()

	wf := &config.Workflow{Env: map[string]string{"A": "1", "B": "2"}}
	applyEnvOverrides(wf, map[string]string{"B": "replaced", "C": "3"})
	require.Equal(t, map[string]string{"A": "1", "B": "replaced", "C": "3"}, wf.Env)

	empty := &config.Workflow{}
	applyEnvOverrides(empty, map[string]string{"K": "v"})
	require.Equal(t, map[string]string{"K": "v"}, empty.Env)
}
