// Package config loads and validates workflow definition files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates a single workflow file.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.NewLoadError(path, 0, err)
	}
	return Parse(data, path)
}

// LoadDir loads every .yaml/.yml file in a directory, in name order.
func LoadDir(dir string) ([]*Workflow, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, serrors.NewLoadError(dir, 0, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, serrors.NewLoadError(dir, 0, fmt.Errorf("no workflow files found"))
	}

	workflows := make([]*Workflow, 0, len(paths))
	for _, path := range paths {
		wf, err := Load(path)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, wf)
	}
	return workflows, nil
}

// Parse decodes, validates, and lints a workflow document. The path is
// used only for error reporting.
func Parse(data []byte, path string) (*Workflow, error) {
	var wf Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, serrors.NewLoadError(path, extractLine(err), err)
	}
	wf.Path = path

	if err := validate.Struct(&wf); err != nil {
		return nil, serrors.NewLoadError(path, 0, err)
	}

	if err := lint(&wf); err != nil {
		return nil, serrors.NewLoadError(path, 0, err)
	}

	return &wf, nil
}

// lint enforces the semantic rules the struct validator cannot express:
// scenario names are unique (the entropy stream is keyed by name), step
// ids are unique within a scenario, and assert-before never references
// the current step's own outputs.
func lint(wf *Workflow) error {
	names := make(map[string]struct{}, len(wf.Scenarios))
	for _, scenario := range wf.Scenarios {
		if _, dup := names[scenario.Name]; dup {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		names[scenario.Name] = struct{}{}

		ids := make(map[string]struct{})
		for _, step := range scenario.Steps {
			if step.ID != "" {
				if _, dup := ids[step.ID]; dup {
					return fmt.Errorf("scenario %q: duplicate step id %q", scenario.Name, step.ID)
				}
				ids[step.ID] = struct{}{}
			}
			for _, assertion := range step.AssertBefore {
				if referencesOutputs(assertion) {
					return fmt.Errorf("scenario %q, step %q: assert-before cannot reference outputs.*",
						scenario.Name, step.DisplayName())
				}
			}
		}
	}
	return nil
}

// referencesOutputs reports whether a template uses the reserved
// `outputs` namespace as a path root (as opposed to steps.<id>.outputs).
// Occurrences inside quoted string literals are data, not references.
func referencesOutputs(template string) bool {
	const marker = "outputs."

	inString := false
	var quote byte
	for i := 0; i < len(template); i++ {
		c := template[i]
		if inString {
			if c == quote && template[i-1] != '\\' {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
			continue
		}
		if !strings.HasPrefix(template[i:], marker) {
			continue
		}
		if i == 0 {
			return true
		}
		prev := template[i-1]
		if prev != '.' && prev != '_' && prev != '-' && !isAlphanumeric(prev) {
			return true
		}
	}
	return false
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
