package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

const validWorkflow = `name: User Management

env:
  DB_URL: postgres://localhost/test

containers:
  postgres: postgres:15

scenarios:
  - name: Create user
    steps:
      - name: Create user
        id: user
        uses: user/create
        with:
          username: alice
          email: alice@test.com

      - name: Verify
        uses: assert/not-empty
        with:
          value: ${{ steps.user.outputs.id }}
`

func TestParseValidWorkflow(t *testing.T) {
	t.Parallel()

	wf, err := Parse([]byte(validWorkflow), "users.yaml")
	require.NoError(t, err)
	require.Equal(t, "User Management", wf.Name)
	require.Equal(t, "users.yaml", wf.Path)
	require.Equal(t, "postgres://localhost/test", wf.Env["DB_URL"])
	require.Equal(t, "postgres:15", wf.Containers["postgres"])
	require.Len(t, wf.Scenarios, 1)
	require.Len(t, wf.Scenarios[0].Steps, 2)

	step := wf.Scenarios[0].Steps[0]
	require.Equal(t, "user/create", step.Uses)
	require.Equal(t, "user", step.ID)
	require.Equal(t, "alice", step.With["username"])
	require.False(t, step.ContinueOnError)
}

func TestParseStepOptions(t *testing.T) {
	t.Parallel()

	doc := `name: Options
scenarios:
  - name: one
    steps:
      - uses: core/fail
        continue-on-error: true
        assert-before:
          - ${{ env.READY == "yes" }}
        assert-after:
          - ${{ outputs.id != "" }}
`
	wf, err := Parse([]byte(doc), "options.yaml")
	require.NoError(t, err)

	step := wf.Scenarios[0].Steps[0]
	require.True(t, step.ContinueOnError)
	require.Equal(t, "core/fail", step.DisplayName())
	require.Len(t, step.AssertBefore, 1)
	require.Len(t, step.AssertAfter, 1)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("name: [unclosed"), "broken.yaml")
	var loadErr *serrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "broken.yaml", loadErr.Path)
}

func TestParseRejectsMissingFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
	}{
		{"missing name", "scenarios:\n  - name: s\n    steps:\n      - uses: a/b\n"},
		{"missing scenarios", "name: Empty\n"},
		{"scenario without steps", "name: W\nscenarios:\n  - name: s\n"},
		{"step without uses", "name: W\nscenarios:\n  - name: s\n    steps:\n      - id: x\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.doc), "w.yaml")
			var loadErr *serrors.LoadError
			require.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestParseRejectsDuplicateScenarioNames(t *testing.T) {
	t.Parallel()

	doc := `name: Dup
scenarios:
  - name: same
    steps:
      - uses: a/b
  - name: same
    steps:
      - uses: a/b
`
	_, err := Parse([]byte(doc), "dup.yaml")
	var loadErr *serrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Contains(t, err.Error(), `duplicate scenario name "same"`)
}

func TestParseRejectsDuplicateStepIDs(t *testing.T) {
	t.Parallel()

	doc := `name: Dup
scenarios:
  - name: s
    steps:
      - id: a
        uses: x/y
      - id: a
        uses: x/y
`
	_, err := Parse([]byte(doc), "dup.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate step id "a"`)
}

func TestParseAllowsSameStepIDAcrossScenarios(t *testing.T) {
	t.Parallel()

	doc := `name: OK
scenarios:
  - name: s1
    steps:
      - id: a
        uses: x/y
  - name: s2
    steps:
      - id: a
        uses: x/y
`
	_, err := Parse([]byte(doc), "ok.yaml")
	require.NoError(t, err)
}

func TestParseRejectsOutputsInAssertBefore(t *testing.T) {
	t.Parallel()

	doc := `name: Bad
scenarios:
  - name: s
    steps:
      - uses: x/y
        assert-before:
          - ${{ outputs.id != "" }}
`
	_, err := Parse([]byte(doc), "bad.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "assert-before cannot reference outputs.*")
}

func TestAssertBeforeMayReferenceStepOutputs(t *testing.T) {
	t.Parallel()

	doc := `name: OK
scenarios:
  - name: s
    steps:
      - uses: x/y
        assert-before:
          - ${{ steps.prior.outputs.id != "" }}
`
	_, err := Parse([]byte(doc), "ok.yaml")
	require.NoError(t, err)
}

func TestAssertBeforeMayMentionOutputsInStringData(t *testing.T) {
	t.Parallel()

	doc := `name: OK
scenarios:
  - name: s
    steps:
      - uses: x/y
        assert-before:
          - '${{ env.MODE == "outputs.debug" }}'
`
	_, err := Parse([]byte(doc), "ok.yaml")
	require.NoError(t, err)
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(validWorkflow), 0o644))

	second := `name: Second
scenarios:
  - name: s
    steps:
      - uses: a/b
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte(second), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	workflows, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, workflows, 2)
	// Name order.
	require.Equal(t, "Second", workflows[0].Name)
	require.Equal(t, "User Management", workflows[1].Name)
}

func TestLoadDirEmpty(t *testing.T) {
	t.Parallel()

	_, err := LoadDir(t.TempDir())
	var loadErr *serrors.LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestReferencesOutputs(t *testing.T) {
	t.Parallel()

	require.True(t, referencesOutputs(`${{ outputs.id != "" }}`))
	require.True(t, referencesOutputs(`${{outputs.id}}`))
	require.False(t, referencesOutputs(`${{ steps.user.outputs.id != "" }}`))
	require.False(t, referencesOutputs(`no templates at all`))
	// Quoted string literals mentioning the namespace are data.
	require.False(t, referencesOutputs(`${{ env.MODE == "outputs.debug" }}`))
	require.False(t, referencesOutputs(`${{ env.MODE == 'outputs.debug' }}`))
	require.True(t, referencesOutputs(`${{ outputs.mode == "outputs.debug" }}`))
}
