package models

import "fmt"

// GenerationError reports invalid generation parameters. The parameter name
// and constraint are kept separate so callers can display them directly.
type GenerationError struct {
	Param      string
	Constraint string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("invalid generation parameter %q: %s", e.Param, e.Constraint)
}

// FilterError reports an invalid filter specification.
type FilterError struct {
	Field      string
	Constraint string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter field %q: %s", e.Field, e.Constraint)
}
