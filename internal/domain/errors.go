package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// InvalidValueError reports a value outside one of the closed enumerations.
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}
