package errors

import (
	"fmt"
)

// LoadError represents a workflow file that could not be loaded: YAML
// failures, duplicate scenario names, duplicate step ids. Load errors are
// fatal and abort the run before any step executes.
type LoadError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewLoadError constructs a LoadError.
func NewLoadError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &LoadError{Path: path, Line: line, Message: message, Err: err}
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("load error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("load error: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RegistrationError indicates a duplicate or otherwise invalid step
// registry binding. Registration happens once at startup, so this is
// fatal before any run begins.
type RegistrationError struct {
	Step    string
	Message string
}

// NewRegistrationError constructs a RegistrationError for the given step name.
func NewRegistrationError(step, message string) error {
	return &RegistrationError{Step: step, Message: message}
}

func (e *RegistrationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Step != "" {
		return fmt.Sprintf("registration error [%s]: %s", e.Step, e.Message)
	}
	return fmt.Sprintf("registration error: %s", e.Message)
}

// ExpressionError captures template evaluation failures: syntax errors,
// namespace misuse, non-comparable operand types.
type ExpressionError struct {
	Expr    string
	Message string
	Err     error
}

// NewExpressionError constructs an ExpressionError for the given expression.
func NewExpressionError(expr, message string) error {
	return &ExpressionError{Expr: expr, Message: message}
}

func (e *ExpressionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Expr != "" {
		return fmt.Sprintf("expression error in %q: %s", e.Expr, e.Message)
	}
	return fmt.Sprintf("expression error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ExpressionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ArgumentShapeError indicates resolved step arguments that do not fit
// the handler's declared argument type.
type ArgumentShapeError struct {
	Step string
	Err  error
}

// NewArgumentShapeError constructs an ArgumentShapeError.
func NewArgumentShapeError(step string, err error) error {
	return &ArgumentShapeError{Step: step, Err: err}
}

func (e *ArgumentShapeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Step != "" {
		return fmt.Sprintf("argument shape error on step %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("argument shape error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ArgumentShapeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AssertionError records a pre- or post-assertion that evaluated false or
// failed to evaluate. Distinguished from invocation failures so reports
// can say whether behavior or expectation was violated.
type AssertionError struct {
	Assertion string
	Message   string
	Err       error
}

// NewAssertionError constructs an AssertionError for the given assertion template.
func NewAssertionError(assertion, message string, err error) error {
	return &AssertionError{Assertion: assertion, Message: message, Err: err}
}

func (e *AssertionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("assertion failed: %s: %s", e.Assertion, e.Message)
	}
	return fmt.Sprintf("assertion failed: %s", e.Assertion)
}

// Unwrap exposes the underlying error.
func (e *AssertionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DuplicateOutputError indicates a step identifier that was recorded
// twice within one scenario. The loader rejects duplicate ids statically,
// so hitting this at runtime means a handler or hook misused the context.
type DuplicateOutputError struct {
	ID string
}

// NewDuplicateOutputError constructs a DuplicateOutputError.
func NewDuplicateOutputError(id string) error {
	return &DuplicateOutputError{ID: id}
}

func (e *DuplicateOutputError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("output already recorded for step id %q", e.ID)
}

// ProvisionError represents a container setup failure. Fatal to the
// enclosing feature; other features still report.
type ProvisionError struct {
	Alias string
	Image string
	Err   error
}

// NewProvisionError constructs a ProvisionError.
func NewProvisionError(alias, image string, err error) error {
	return &ProvisionError{Alias: alias, Image: image, Err: err}
}

func (e *ProvisionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("provision error for container %s (%s): %v", e.Alias, e.Image, e.Err)
}

// Unwrap exposes the root error.
func (e *ProvisionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents a runtime failure while executing a step that
// is not better described by one of the kinds above (missing handler,
// world construction failure).
type ExecutionError struct {
	Step string
	Err  error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(step string, err error) error {
	return &ExecutionError{Step: step, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Step != "" {
		return fmt.Sprintf("execution error on step %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
