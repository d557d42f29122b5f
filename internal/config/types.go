package config

// Workflow represents one feature file: environment declarations,
// auxiliary container declarations, and an ordered list of scenarios.
// Immutable once loaded.
type Workflow struct {
	Name       string            `yaml:"name" validate:"required,min=1,max=200"`
	Env        map[string]string `yaml:"env,omitempty"`
	Containers map[string]string `yaml:"containers,omitempty" validate:"omitempty,dive,keys,min=1,endkeys,min=1"`
	Scenarios  []Scenario        `yaml:"scenarios" validate:"required,min=1,dive"`

	// Path is the file this workflow was loaded from, for error reporting.
	Path string `yaml:"-"`
}

// Scenario is an ordered, named sequence of steps executed sequentially
// with an isolated output namespace.
type Scenario struct {
	Name  string `yaml:"name" validate:"required,min=1,max=200"`
	Steps []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step declares one action: a target handler name, arguments, optional
// pre/post assertions, and an optional identifier for later reference.
type Step struct {
	Name            string         `yaml:"name,omitempty"`
	ID              string         `yaml:"id,omitempty"`
	Uses            string         `yaml:"uses" validate:"required,min=1"`
	With            map[string]any `yaml:"with,omitempty"`
	ContinueOnError bool           `yaml:"continue-on-error,omitempty"`
	AssertBefore    []string       `yaml:"assert-before,omitempty"`
	AssertAfter     []string       `yaml:"assert-after,omitempty"`
}

// DisplayName returns the step's name, falling back to its handler key.
func (s Step) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Uses
}
