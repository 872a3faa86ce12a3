package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCount  = errors.New("count must be greater than zero")
	ErrPrereqMissing = errors.New("prerequisite entity set is missing or empty")
)

// LoadError reports a row that the store rejected during a replace load.
// A LoadError means an upstream integrity invariant was broken, since the
// generator never emits rows that violate the schema.
type LoadError struct {
	Table string
	Row   int
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load failed for table %s at row %d: %v", e.Table, e.Row, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
