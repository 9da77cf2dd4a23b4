package claseval

import "fmt"

// ConfigurationError reports invalid construction arguments
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Message)
}

// ShapeMismatchError reports batch or vector length disagreements
type ShapeMismatchError struct {
	Predictions int
	Targets     int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %d predictions vs %d targets", e.Predictions, e.Targets)
}

// OutOfRangeError reports a class id outside [0, NumClasses)
type OutOfRangeError struct {
	ID         int
	Index      int
	NumClasses int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("class id %d at position %d is outside [0, %d)", e.ID, e.Index, e.NumClasses)
}

// UnknownLabelError reports a label string with no id in the registry
type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown label %q", e.Label)
}

// InvalidModeError reports an averaging mode outside macro/micro/weighted
type InvalidModeError struct {
	Mode AverageMode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid averaging mode %q (want macro, micro or weighted)", string(e.Mode))
}
