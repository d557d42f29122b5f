package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedWorkflow(t *testing.T) {
	out, err := executeCmd(t, "validate", "testdata/user-management.yaml")
	require.NoError(t, err)
	require.Contains(t, out, "testdata/user-management.yaml: ok (2 scenarios)")
}

func TestValidateRejectsDuplicateScenarioNames(t *testing.T) {
	_, err := executeCmd(t, "validate", "testdata/duplicate-scenarios.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate scenario name")
}
